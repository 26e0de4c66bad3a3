// Package web serves the server-rendered frontend. It reaches the API only
// through apiclient.Queries.
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/diewo77/go-carteira/apiclient"
	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/models"
	"github.com/diewo77/go-carteira/validation"
	"github.com/diewo77/go-carteira/view"
)

type Handler struct {
	q *apiclient.Queries
}

func NewHandler(q *apiclient.Queries) *Handler { return &Handler{q: q} }

// Register mounts the page routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /clientes", h.Clients)
	mux.HandleFunc("POST /clientes", h.CreateClient)
	mux.HandleFunc("POST /clientes/{id}/status", h.ToggleClient)
	mux.HandleFunc("POST /clientes/{id}/excluir", h.DeleteClient)
	mux.HandleFunc("GET /clientes/{id}/ativos", h.ClientAssets)
	mux.HandleFunc("POST /clientes/{id}/ativos", h.CreateAsset)
	mux.HandleFunc("POST /ativos/{id}/excluir", h.DeleteAsset)
	mux.HandleFunc("GET /ativos", h.Assets)
	mux.HandleFunc("GET /healthz", h.Healthz)
}

// Healthz reports 200 when the API behind the frontend answers its own
// health check, 503 otherwise.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.q.Health(r.Context()); err != nil {
		logging.FromContext(r.Context()).Warn("api health check failed", zap.Error(err))
		httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "api": "down"})
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok", "api": "up"})
}

// clientForm holds the raw values of the client form.
type clientForm struct {
	Name   string
	Email  string
	Active bool
}

// assetForm holds the raw values of the asset form.
type assetForm struct {
	Name  string
	Value string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	data["Flash"] = PopFlash(w, r)
	if err := view.Render(w, r, status, name, data); err != nil {
		logging.FromContext(r.Context()).Error("render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "template render error", http.StatusInternalServerError)
	}
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "home.html", nil)
}

func (h *Handler) Clients(w http.ResponseWriter, r *http.Request) {
	h.renderClients(w, r, http.StatusOK, clientForm{Active: true}, validation.Violations{}, "")
}

func (h *Handler) renderClients(w http.ResponseWriter, r *http.Request, status int, form clientForm, errs validation.Violations, notice string) {
	data := map[string]any{"Form": form, "Errors": errs, "Notice": notice}
	clients, err := h.q.Clients(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Warn("load clients failed", zap.Error(err))
		data["LoadError"] = "load_clients_err"
	}
	data["Clients"] = clients
	h.render(w, r, status, "clients.html", data)
}

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := clientForm{
		Name:   r.FormValue("nome"),
		Email:  strings.TrimSpace(r.FormValue("email")),
		Active: r.FormValue("status") != "false",
	}
	active := form.Active
	in := models.ClientInput{Name: form.Name, Email: form.Email, Active: &active}
	if v := validation.Struct(in); !v.Empty() {
		h.renderClients(w, r, http.StatusBadRequest, form, v, "")
		return
	}
	if _, err := h.q.CreateClient(r.Context(), in); err != nil {
		errs, notice := mutationFailure(r, err)
		h.renderClients(w, r, http.StatusBadRequest, form, errs, notice)
		return
	}
	Flash(w, r, "success", "client_created")
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

// ToggleClient flips the status of a client, sending the full record back.
func (h *Handler) ToggleClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	clients, err := h.q.Clients(r.Context())
	if err != nil {
		Flash(w, r, "error", "save_failed")
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	var current *models.Client
	for i := range clients {
		if clients[i].ID == id {
			current = &clients[i]
			break
		}
	}
	if current == nil {
		Flash(w, r, "error", "client_not_found")
		http.Redirect(w, r, "/clientes", http.StatusSeeOther)
		return
	}
	in := models.InputFromClient(*current)
	flipped := !current.Active
	in.Active = &flipped
	if _, err := h.q.UpdateClient(r.Context(), id, in); err != nil {
		_, notice := mutationFailure(r, err)
		if notice == "" {
			notice = "save_failed"
		}
		Flash(w, r, "error", notice)
	} else {
		Flash(w, r, "success", "client_updated")
	}
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.q.DeleteClient(r.Context(), id); err != nil {
		Flash(w, r, "error", deleteFailure(r, err))
	} else {
		Flash(w, r, "success", "client_deleted")
	}
	http.Redirect(w, r, "/clientes", http.StatusSeeOther)
}

func (h *Handler) ClientAssets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.renderClientAssets(w, r, http.StatusOK, id, assetForm{}, validation.Violations{}, "")
}

func (h *Handler) renderClientAssets(w http.ResponseWriter, r *http.Request, status int, id uint, form assetForm, errs validation.Violations, notice string) {
	data := map[string]any{"ClientID": id, "Form": form, "Errors": errs, "Notice": notice}
	assets, err := h.q.ClientAssets(r.Context(), id)
	if err != nil {
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			status = http.StatusNotFound
			data["LoadError"] = "client_not_found"
		} else {
			logging.FromContext(r.Context()).Warn("load client assets failed", zap.Error(err))
			data["LoadError"] = "load_assets_err"
		}
	}
	data["Assets"] = assets
	// the client name is decoration; a failed lookup leaves the heading bare
	if clients, err := h.q.Clients(r.Context()); err == nil {
		for i := range clients {
			if clients[i].ID == id {
				data["Client"] = &clients[i]
				break
			}
		}
	}
	h.render(w, r, status, "client_assets.html", data)
}

func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := assetForm{Name: r.FormValue("nome"), Value: strings.TrimSpace(r.FormValue("valor"))}
	in, v := assetInput(form, id)
	if !v.Empty() {
		h.renderClientAssets(w, r, http.StatusBadRequest, id, form, v, "")
		return
	}
	if _, err := h.q.CreateAsset(r.Context(), in); err != nil {
		errs, notice := mutationFailure(r, err)
		h.renderClientAssets(w, r, http.StatusBadRequest, id, form, errs, notice)
		return
	}
	Flash(w, r, "success", "asset_created")
	http.Redirect(w, r, "/clientes/"+strconv.FormatUint(uint64(id), 10)+"/ativos", http.StatusSeeOther)
}

// assetInput converts the form into the API payload and validates it. A value
// that is not a number is reported like a JSON type mismatch.
func assetInput(form assetForm, clientID uint) (models.AssetInput, validation.Violations) {
	cid := int64(clientID)
	in := models.AssetInput{Name: form.Name, ClientID: &cid}
	var parseErr bool
	if form.Value != "" {
		f, err := strconv.ParseFloat(strings.Replace(form.Value, ",", ".", 1), 64)
		if err != nil {
			parseErr = true
		} else {
			in.Value = &f
		}
	}
	v := validation.Struct(in)
	if parseErr {
		v["valor"] = "invalid_type"
	}
	return in, v
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	next := r.FormValue("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/ativos"
	}
	if err := h.q.DeleteAsset(r.Context(), id); err != nil {
		Flash(w, r, "error", deleteFailure(r, err))
	} else {
		Flash(w, r, "success", "asset_deleted")
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

func (h *Handler) Assets(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{}
	assets, err := h.q.Assets(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Warn("load assets failed", zap.Error(err))
		data["LoadError"] = "load_assets_err"
	}
	data["Assets"] = assets
	h.render(w, r, http.StatusOK, "assets.html", data)
}

func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return uint(id), true
}

// mutationFailure splits a failed write into field violations reported by
// the API and a translated notice code.
func mutationFailure(r *http.Request, err error) (validation.Violations, string) {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		if len(apiErr.Detail) > 0 {
			return validation.Violations(apiErr.Detail), ""
		}
		switch apiErr.Code {
		case "client_not_found", "asset_not_found":
			return validation.Violations{}, apiErr.Code
		}
	}
	logging.FromContext(r.Context()).Warn("api write failed", zap.Error(err))
	return validation.Violations{}, "save_failed"
}

func deleteFailure(r *http.Request, err error) string {
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case "client_not_found", "asset_not_found", "client_has_assets":
			return apiErr.Code
		}
	}
	logging.FromContext(r.Context()).Warn("api delete failed", zap.Error(err))
	return "delete_failed"
}
