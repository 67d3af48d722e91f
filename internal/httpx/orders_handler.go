package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/pasalhub/pasal/internal/auth"
	"github.com/pasalhub/pasal/internal/metrics"
	"github.com/pasalhub/pasal/internal/orders"
	"github.com/pasalhub/pasal/internal/redisx"
)

type OrdersHandler struct {
	Orders  *orders.Service
	Feed    *orders.Feed
	Auth    *auth.Service
	Redis   *redis.Client    // optional: checkout idempotency + feed cache
	Metrics *metrics.Metrics // optional
}

type statusUpdateReq struct {
	Status string `json:"status"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.Middleware)
		r.Post("/orders", h.checkout)
		r.Get("/orders", h.listBuyer)
		r.Get("/seller/orders", h.listSeller)
		r.Put("/seller/orders/{id}/status", h.updateStatus)
		r.Get("/seller/notifications", h.notifications)
	})
}

func (h *OrdersHandler) checkout(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())

	var req orders.CheckoutRequest
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		h.countFailure("invalid_json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Retried submissions with the same key return the original order
	// instead of placing a second one.
	idemKey := ""
	if key := r.Header.Get("Idempotency-Key"); key != "" && h.Redis != nil {
		idemKey = fmt.Sprintf(redisx.KeyIdemCheckout, id.ID, key)
		if orderID, err := h.Redis.Get(ctx, idemKey).Result(); err == nil && orderID != "" {
			if o, err := h.Orders.Get(ctx, orderID); err == nil {
				writeJSON(w, http.StatusOK, o)
				return
			}
		}
	}

	o, err := h.Orders.PlaceOrder(ctx, id.ID, req)
	if err != nil {
		reason := writeError(w, err)
		h.countFailure(reason)
		return
	}
	if idemKey != "" {
		_ = h.Redis.Set(ctx, idemKey, o.ID, redisx.TTLIdempotency).Err()
	}
	if h.Metrics != nil {
		h.Metrics.OrdersPlaced.Inc()
	}
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) countFailure(reason string) {
	if h.Metrics != nil {
		h.Metrics.CheckoutFailures.WithLabelValues(reason).Inc()
	}
}

func (h *OrdersHandler) listBuyer(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Orders.ListByBuyer(ctx, id.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if os == nil {
		os = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) listSeller(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != auth.RoleSeller {
		writeError(w, errForbidden)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Orders.ListBySeller(ctx, id.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if os == nil {
		os = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != auth.RoleSeller {
		writeError(w, errForbidden)
		return
	}
	orderID := chi.URLParam(r, "id")

	var req statusUpdateReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// an order that holds none of this seller's items is invisible to them
	cur, err := h.Orders.Get(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ownsAny(cur, id.ID) {
		writeError(w, orders.NotFoundError{OrderID: orderID})
		return
	}

	o, err := h.Orders.UpdateStatus(ctx, orderID, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// notifFeedKey folds limit 0 into the default so implicit and explicit
// default-limit reads share one cache slot.
func notifFeedKey(sellerID string, limit int) string {
	if limit <= 0 {
		limit = orders.DefaultFeedLimit
	}
	return fmt.Sprintf(redisx.KeyNotifFeed, sellerID, limit)
}

func ownsAny(o orders.Order, sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

func (h *OrdersHandler) notifications(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != auth.RoleSeller {
		writeError(w, errForbidden)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	cacheKey := ""
	if h.Redis != nil {
		cacheKey = notifFeedKey(id.ID, limit)
		if s, err := h.Redis.Get(ctx, cacheKey).Result(); err == nil && s != "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(s))
			return
		}
	}

	ns, err := h.Feed.List(ctx, id.ID, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if ns == nil {
		ns = []orders.Notification{}
	}
	if cacheKey != "" {
		if b, err := json.Marshal(ns); err == nil {
			_ = h.Redis.Set(ctx, cacheKey, b, redisx.TTLNotifFeed).Err()
		}
	}
	writeJSON(w, http.StatusOK, ns)
}
