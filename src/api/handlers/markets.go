package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"securities/src/schemas"
	"securities/src/utils"
)

func (h *Handler) CreateMarket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	securityID, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.CreateMarketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	market, err := h.Controller.CreateMarket(ctx, securityID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, market, http.StatusCreated)
}

func (h *Handler) GetMarketByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	market, err := h.Controller.GetMarketByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, market, http.StatusOK)
}

func (h *Handler) DeleteMarket(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.DeleteMarket(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}

// AppendPrices accepts a single price or a batch.
func (h *Handler) AppendPrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	reqs, err := decodeOneOrMany[schemas.PriceRequest](r.Body)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	prices, err := h.Controller.AppendPrices(ctx, id, reqs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, prices, http.StatusCreated)
}
