package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"securities/src/schemas"
	"securities/src/utils"
)

func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	securityID, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	event, err := h.Controller.CreateEvent(ctx, securityID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, event, http.StatusCreated)
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.DeleteEvent(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}
