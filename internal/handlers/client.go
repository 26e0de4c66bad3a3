package handlers

import (
	"net/http"

	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/models"
	"github.com/diewo77/go-carteira/internal/store"
)

// ClientHandler serves /clientes.
type ClientHandler struct {
	store store.ClientStore
}

func NewClientHandler(s store.ClientStore) *ClientHandler { return &ClientHandler{store: s} }

// Register mounts the client routes on mux.
func (h *ClientHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /clientes", h.List)
	mux.HandleFunc("POST /clientes", h.Create)
	mux.HandleFunc("PUT /clientes/{id}", h.Update)
	mux.HandleFunc("DELETE /clientes/{id}", h.Delete)
	mux.HandleFunc("GET /clientes/{id}/ativos", h.ListAssets)
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.store.ListClients(r.Context())
	if err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_list_clients")
		return
	}
	httpx.JSON(w, http.StatusOK, clients)
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in models.ClientInput
	if !decode(w, r, &in) {
		return
	}
	var c models.Client
	in.Apply(&c)
	if err := h.store.CreateClient(r.Context(), &c); err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_create_client")
		return
	}
	httpx.JSON(w, http.StatusCreated, c)
}

// Update replaces the whole client record.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in models.ClientInput
	if !decode(w, r, &in) {
		return
	}
	c := models.Client{ID: id}
	in.Apply(&c)
	if err := h.store.UpdateClient(r.Context(), &c); err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_update_client")
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteClient(r.Context(), id); err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_delete_client")
		return
	}
	httpx.NoContent(w)
}

// ListAssets lists the assets owned by one client.
func (h *ClientHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	assets, err := h.store.ListClientAssets(r.Context(), id)
	if err != nil {
		storeError(w, r, err, "client_not_found", "failed_to_list_assets")
		return
	}
	httpx.JSON(w, http.StatusOK, assets)
}
