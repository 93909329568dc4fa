package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dom/account-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.Create(r.Context(), formPayload(r)); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	payload := formPayload(r)
	addURLID(payload, r)

	if err := h.userService.Delete(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	payload := formPayload(r)
	addURLID(payload, r)

	if err := h.userService.Modify(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns every user record as stored. Internal endpoint; the response
// includes password digests.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

// addURLID copies the {id} path segment into the payload as an integer. A
// non-numeric segment leaves the field absent so schema validation reports
// it rather than the router.
func addURLID(payload map[string]any, r *http.Request) {
	if id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64); err == nil {
		payload["id"] = id
	}
}
