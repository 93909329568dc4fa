package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dom/account-service/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates form credentials and responds with the bearer token.
// The client never supplies its own ip field; the server injects the caller
// address, so a spoofed ip in the form is dropped before validation.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	payload := formPayload(r)
	payload["ip"] = clientIP(r)

	token, err := h.authService.Login(r.Context(), payload)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(token)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.Logout(r.Context(), formPayload(r)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// OnlineUsers lists active sessions joined with their usernames.
func (h *AuthHandler) OnlineUsers(w http.ResponseWriter, r *http.Request) {
	online, err := h.authService.ListOnline(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(online)
}
