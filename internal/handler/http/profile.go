package http

import (
	"net/http"

	"github.com/MKhiriev/go-agro-keeper/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.ProfileService.GetProfile(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, models.UserPayload{User: user}, "")
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.ProfileService.UpdateProfile(r.Context(), currentUser(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, models.UserPayload{User: user}, "")
}
