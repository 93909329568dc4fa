package handlers

import (
	"errors"
	"log"
	"net"
	"net/http"

	"github.com/dom/account-service/internal/domain"
	"github.com/dom/account-service/internal/validate"
)

// writeError maps the service error taxonomy onto HTTP statuses. Validation
// failures answer 404 — historical behavior other clients depend on, kept
// deliberately instead of the semantically correct 400.
func writeError(w http.ResponseWriter, err error) {
	var ve *validate.Error
	if errors.As(err, &ve) {
		http.Error(w, ve.Error(), http.StatusNotFound)
		return
	}

	switch {
	case errors.Is(err, domain.ErrWrongUsername),
		errors.Is(err, domain.ErrWrongCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrWeakPassword):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, domain.ErrAlreadyLoggedIn),
		errors.Is(err, domain.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("ERROR [handlers] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// formPayload flattens the POST form into the raw field map the schemas
// validate. Only submitted fields appear, so "absent" and "empty string"
// stay distinguishable downstream.
func formPayload(r *http.Request) map[string]any {
	payload := make(map[string]any)
	if err := r.ParseForm(); err != nil {
		return payload
	}
	for key, values := range r.PostForm {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}
	return payload
}

// clientIP extracts the peer address that login records as the session ip.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
