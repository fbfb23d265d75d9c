package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"cox_coop/internal/admin"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog"
)

type sessionHandler struct {
	gate *admin.Gate
}

type loginRequest struct {
	Password string `json:"password"`
}

// CSRFToken hands out a token for the form login.
func (h *sessionHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set("X-CSRF-Token", token)
	writeJSON(w, http.StatusOK, map[string]string{"csrfToken": token})
}

// Login accepts {"password": "..."} or a form field named password.
func (h *sessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Password = r.PostForm.Get("password")
	}

	logger := zerolog.Ctx(r.Context())
	if err := h.gate.Check(req.Password); err != nil {
		if errors.Is(err, admin.ErrNoPassword) {
			logger.Warn().Msg("Admin login attempted but no password is configured")
		} else {
			logger.Info().Msg("Admin login rejected")
		}
		writeError(w, http.StatusUnauthorized, "Incorrect password")
		return
	}

	if err := h.gate.IssueCookie(w); err != nil {
		logger.Error().Err(err).Msg("Failed to issue admin session")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	logger.Info().Msg("Admin logged in")
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *sessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.gate.Clear(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
