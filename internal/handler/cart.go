package handler

import (
	"net/http"

	"restaurante-be/internal/cart"
)

func (h *Handler) ViewCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cart.ToView(h.CartStore.Load(r)))
}

// saveCart persists c and answers with its fresh view.
func (h *Handler) saveCart(w http.ResponseWriter, r *http.Request, c *cart.Cart, code int) {
	if err := h.CartStore.Save(w, r, c); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, code, cart.ToView(c))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req cart.AddItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c := h.CartStore.Load(r)
	if _, err := h.Carts.Add(r.Context(), c, req, h.now()); err != nil {
		writeError(w, r, err)
		return
	}
	h.saveCart(w, r, c, http.StatusCreated)
}

func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req cart.UpdateItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c := h.CartStore.Load(r)
	if err := h.Carts.Update(r.Context(), c, r.PathValue("key"), req.Quantity); err != nil {
		writeError(w, r, err)
		return
	}
	h.saveCart(w, r, c, http.StatusOK)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	c := h.CartStore.Load(r)
	if err := h.Carts.Remove(r.Context(), c, r.PathValue("key")); err != nil {
		writeError(w, r, err)
		return
	}
	h.saveCart(w, r, c, http.StatusOK)
}
