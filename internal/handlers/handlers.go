// Package handlers implements the JSON API for clients and assets.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/diewo77/go-carteira/httpx"
	"github.com/diewo77/go-carteira/internal/logging"
	"github.com/diewo77/go-carteira/internal/store"
	"github.com/diewo77/go-carteira/validation"
)

// pathID reads a positive integer path value. It writes 400 invalid_id and
// returns false when the value is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(id), true
}

// decode reads and validates a JSON body into dst, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	v, err := validation.DecodeJSON(r.Body, dst)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return false
	}
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return false
	}
	return true
}

// storeError maps a store error onto a response. notFound is the code used
// for store.ErrNotFound; fallback is the code used for storage failures.
func storeError(w http.ResponseWriter, r *http.Request, err error, notFound, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, notFound, nil)
	case errors.Is(err, store.ErrClientNotFound):
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
	case errors.Is(err, store.ErrClientHasAssets):
		httpx.JSONError(w, http.StatusConflict, "client_has_assets", nil)
	default:
		logging.FromContext(r.Context()).Error("store operation failed",
			zap.String("code", fallback), zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, fallback, nil)
	}
}
