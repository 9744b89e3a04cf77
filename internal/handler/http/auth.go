package http

import (
	"net/http"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/models"
)

const messageLoggedOut = "You are logged out"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", token.UserID).Msg("user successfully registered")
	writeSuccess(w, r, http.StatusCreated, models.TokenResponse{Token: token.SignedString}, "")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("user_id", token.UserID).Msg("user successfully logged in")
	writeSuccess(w, r, http.StatusOK, models.TokenResponse{Token: token.SignedString}, "")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.AuthService.Logout(r.Context(), currentUser(r)); err != nil {
		writeError(w, r, err)
		return
	}

	writeSuccess(w, r, http.StatusOK, nil, messageLoggedOut)
}
