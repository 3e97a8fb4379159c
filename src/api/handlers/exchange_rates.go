package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"securities/src/schemas"
	"securities/src/utils"
)

func (h *Handler) GetAllExchangeRates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	rates, err := h.Controller.GetAllExchangeRates(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rates, http.StatusOK)
}

func (h *Handler) GetExchangeRateByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	rate, err := h.Controller.GetExchangeRateByID(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rate, http.StatusOK)
}

func (h *Handler) CreateExchangeRate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req schemas.CreateExchangeRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	rate, err := h.Controller.CreateExchangeRate(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, rate, http.StatusCreated)
}

func (h *Handler) DeleteExchangeRate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.Controller.DeleteExchangeRate(ctx, id); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, map[string]string{"status": "ok"}, http.StatusOK)
}

// AppendExchangeRatePrices accepts a single value or a batch.
func (h *Handler) AppendExchangeRatePrices(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	id, err := uintParam(r, "id")
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	reqs, err := decodeOneOrMany[schemas.ExchangeRatePriceRequest](r.Body)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	prices, err := h.Controller.AppendExchangeRatePrices(ctx, id, reqs)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, prices, http.StatusCreated)
}
