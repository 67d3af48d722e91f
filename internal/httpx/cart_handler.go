package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pasalhub/pasal/internal/auth"
	"github.com/pasalhub/pasal/internal/cart"
)

type CartHandler struct {
	Cart *cart.Service
	Auth *auth.Service
}

type updateCartReq struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type removeCartReq struct {
	ProductID string `json:"product_id"`
}

type bulkRemoveReq struct {
	ProductIDs []string `json:"product_ids"`
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.Middleware)
		r.Post("/cart/items/{productID}", h.add)
		r.Get("/cart/items", h.list)
		r.Put("/cart/items", h.update)
		r.Post("/cart/items/remove", h.remove)
		r.Post("/cart/items/bulk-remove", h.bulkRemove)
	})
}

func (h *CartHandler) add(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Cart.Add(ctx, id.ID, chi.URLParam(r, "productID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *CartHandler) list(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Cart.List(ctx, id.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []cart.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *CartHandler) update(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	var req updateCartReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	e, err := h.Cart.UpdateQuantity(ctx, id.ID, req.ProductID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (h *CartHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	var req removeCartReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if req.ProductID == "" {
		badRequest(w, "product_id is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Cart.Remove(ctx, id.ID, req.ProductID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}

func (h *CartHandler) bulkRemove(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	var req bulkRemoveReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	if len(req.ProductIDs) == 0 {
		badRequest(w, "product_ids array is required")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Cart.BulkRemove(ctx, id.ID, req.ProductIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "selected items removed", "deleted_count": removed})
}
