package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"securities/src/schemas"
	"securities/src/utils"
)

const maxUseragentLength = 50

// RecordClientUpdate ingests one telemetry ping. It is reachable without a
// session, clients are anonymous.
func (h *Handler) RecordClientUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.ClientUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	// The user agent is ambient header data, not part of the declared
	// payload, so overlong values are cut here rather than rejected.
	var useragent *string
	if ua := r.UserAgent(); ua != "" {
		if len(ua) > maxUseragentLength {
			ua = ua[:maxUseragentLength]
		}
		useragent = &ua
	}

	update, err := h.Controller.RecordClientUpdate(ctx, &req, useragent)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, update, http.StatusCreated)
}

func (h *Handler) ListClientUpdates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	updates, err := h.Controller.ListClientUpdates(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, updates, http.StatusOK)
}

func (h *Handler) DeleteClientUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.DeleteClientUpdate(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}
