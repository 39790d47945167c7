package authorization

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/authzkit/authzkit/pkg/identity"
	"github.com/authzkit/authzkit/pkg/permissions"
	"github.com/authzkit/authzkit/pkg/roles"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain sentinel errors onto HTTP statuses. Unmapped
// errors are reported as 500 without leaking internals to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrNotConcrete),
		errors.Is(err, identity.ErrInvalidGrant),
		errors.Is(err, permissions.ErrMalformedIdentifier),
		errors.Is(err, roles.ErrUnknownRole):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case errors.Is(err, identity.ErrGrantExists):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, identity.ErrGrantNotFound),
		errors.Is(err, identity.ErrAssignmentNotFound),
		errors.Is(err, permissions.ErrPermissionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
