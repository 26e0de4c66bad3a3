package handlers

import (
	"net/http"

	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/models"
	"github.com/diewo77/go-carteira/internal/store"
)

// AssetHandler serves /ativos.
type AssetHandler struct {
	store store.AssetStore
}

func NewAssetHandler(s store.AssetStore) *AssetHandler { return &AssetHandler{store: s} }

// Register mounts the asset routes on mux.
func (h *AssetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /ativos", h.List)
	mux.HandleFunc("POST /ativos", h.Create)
	mux.HandleFunc("PUT /ativos/{id}", h.Update)
	mux.HandleFunc("DELETE /ativos/{id}", h.Delete)
}

// List returns every asset with its owning client embedded.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.store.ListAssets(r.Context())
	if err != nil {
		storeError(w, r, err, "asset_not_found", "failed_to_list_assets")
		return
	}
	httpx.JSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.AssetInput
	if !decode(w, r, &in) {
		return
	}
	var a models.Asset
	in.Apply(&a)
	if err := h.store.CreateAsset(r.Context(), &a); err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_create_asset")
		return
	}
	httpx.JSON(w, http.StatusCreated, a)
}

func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.AssetInput
	if !decode(w, r, &in) {
		return
	}
	a := models.Asset{ID: id}
	in.Apply(&a)
	if err := h.store.UpdateAsset(r.Context(), &a); err != nil {
		storeError(w, r, err, "asset_not_found", "failed_to_update_asset")
		return
	}
	httpx.JSON(w, http.StatusOK, a)
}

func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteAsset(r.Context(), id); err != nil {
		storeError(w, r, err, "asset_not_found", "failed_to_delete_asset")
		return
	}
	httpx.NoContent(w)
}
