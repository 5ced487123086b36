package handler

import (
	"net/http"
	"strconv"
	"strings"

	"restaurante-be/internal/cart"
	"restaurante-be/internal/logger"
	"restaurante-be/internal/metrics"
	"restaurante-be/internal/order"
	"restaurante-be/internal/payment"
	"restaurante-be/internal/session"

	"go.uber.org/zap"
)

const orderPlacedMsg = "Pedido realizado com sucesso!"

type orderResponse struct {
	*order.Order
	PaymentInstructions []string `json:"payment_instructions"`
}

func withInstructions(o *order.Order) orderResponse {
	return orderResponse{
		Order: o,
		PaymentInstructions: payment.Instructions(
			string(o.PaymentMethod),
			string(o.DeliveryType),
			strconv.FormatUint(uint64(o.ID), 10),
			o.TotalAmount,
		),
	}
}

// Checkout shows the cart as it would be charged right now.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	c := h.CartStore.Load(r)
	if !c.IsEmpty() {
		quoted, err := h.Carts.Quote(r.Context(), c, h.now())
		if err != nil {
			writeError(w, r, err)
			return
		}
		c = quoted
	}

	summary, err := order.ToCheckout(c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req order.PlaceOrderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c := h.CartStore.Load(r)
	o, err := h.Orders.PlaceOrder(r.Context(), currentUserID(r), c, req, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	// The order is committed; a cart that fails to clear is only stale.
	if err := h.CartStore.Save(w, r, c); err != nil {
		logger.FromCtx(r.Context()).Error("failed to clear cart after order",
			zap.Uint("order_id", o.ID),
			zap.Error(err),
		)
	}

	h.flash(w, r, session.LevelSuccess, orderPlacedMsg)
	writeJSON(w, http.StatusCreated, withInstructions(o))
}

func (h *Handler) OrderHistory(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.History(r.Context(), currentUserID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) TrackOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.GetForUser(r.Context(), currentUserID(r), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, withInstructions(o))
}

type repeatResponse struct {
	*order.RepeatResult
	Cart *cart.View `json:"cart"`
}

func (h *Handler) RepeatOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c := h.CartStore.Load(r)
	res, err := h.Orders.Repeat(r.Context(), currentUserID(r), id, c, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.CartStore.Save(w, r, c); err != nil {
		writeError(w, r, err)
		return
	}

	if len(res.Skipped) > 0 {
		h.flash(w, r, session.LevelWarning,
			"Alguns itens não estão disponíveis agora: "+strings.Join(res.Skipped, ", "))
	}
	writeJSON(w, http.StatusOK, repeatResponse{RepeatResult: res, Cart: cart.ToView(c)})
}

func (h *Handler) AdminListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := order.AdminFilter{
		Status: order.Status(strings.TrimSpace(q.Get("status"))),
		Period: strings.TrimSpace(q.Get("period")),
	}

	list, err := h.Orders.AdminList(r.Context(), filter, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) AdminOrderDetail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req order.UpdateStatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.UpdateStatus(r.Context(), id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.Reports.Dashboard(r.Context(), h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, metrics.Snapshot())
}
