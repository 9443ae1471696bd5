package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"olw_backend/internal/common"
	"olw_backend/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

// respondError translates a service error into an envelope response,
// masking unexpected failures outside development.
func respondError(w http.ResponseWriter, err error) {
	common.RespondWithDomainError(w, err, config.AppConfig.IsProduction())
}

// decodeBody parses the JSON request body into dst; on failure it writes a
// 400 response and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid JSON in request body.")
		return false
	}
	return true
}

// pathID parses the {id} route parameter; on failure it writes a 400
// response and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid id parameter")
		return 0, false
	}
	return id, true
}
