package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"securities/src/schemas"
	"securities/src/sessions"
	"securities/src/utils"
)

// AuthRequired rejects any request without a live session before the wrapped
// handler runs. The session travels in the request context from here on.
// A session store outage is not an authentication failure, it surfaces as a
// storage error so clients retry instead of re-logging in.
func (h *Handler) AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SessionCookieName)
		if err != nil {
			h.HandleErrors(w, utils.ErrUnauthorized)
			return
		}

		session, err := h.Controller.Sessions.Get(r.Context(), cookie.Value)
		if errors.Is(err, sessions.ErrNotFound) {
			h.HandleErrors(w, utils.ErrUnauthorized)
			return
		}
		if err != nil {
			utils.LoggerFromContext(r.Context()).WithError(err).Error("session lookup failed")
			h.HandleErrors(w, utils.NewStorageError("read session", err))
			return
		}

		next.ServeHTTP(w, r.WithContext(sessions.WithSession(r.Context(), session)))
	})
}

// Login checks credentials and creates a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req schemas.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	user, session, err := h.Controller.Login(r.Context(), &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, r, user, http.StatusOK)
}

// Me shows the identity stored in the caller's session.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := sessions.FromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.ErrUnauthorized)
		return
	}
	h.respond(w, r, schemas.UserResponse{Username: session.Username}, http.StatusOK)
}

// Logout destroys the caller's session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := sessions.FromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.ErrUnauthorized)
		return
	}

	if err := h.Controller.Logout(r.Context(), session); err != nil {
		h.HandleErrors(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	h.respond(w, r, schemas.LogoutResponse{Status: "ok"}, http.StatusOK)
}

// ListSessions enumerates live sessions, ids included, so it stays behind
// the administrator check in the controller.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	session, ok := sessions.FromContext(r.Context())
	if !ok {
		h.HandleErrors(w, utils.ErrUnauthorized)
		return
	}

	all, err := h.Controller.ListSessions(r.Context(), session)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, all, http.StatusOK)
}
