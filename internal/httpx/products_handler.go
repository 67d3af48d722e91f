package httpx

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pasalhub/pasal/internal/auth"
	"github.com/pasalhub/pasal/internal/catalog"
)

type ProductsHandler struct {
	Catalog catalog.Store
	Auth    *auth.Service
}

type productReq struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           int    `json:"price"`
	Stock           int    `json:"stock"`
	QuantityPerUnit int    `json:"quantity_per_unit"`
	ImageURL        string `json:"image_url"`
}

type sellerProductsReq struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.Middleware)
		r.Post("/products", h.create)
		r.Put("/products/{id}", h.update)
		r.Delete("/products/{id}", h.delete)
		r.Post("/seller/products", h.listSeller)
	})
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	q := r.URL.Query()
	f := catalog.Filter{
		Category: catalog.Category(q.Get("category")),
		Keyword:  q.Get("keyword"),
		Sort:     catalog.SortOrder(q.Get("sort")),
	}
	if v := q.Get("min_price"); v != "" {
		f.MinPrice, _ = strconv.Atoi(v)
	}
	if v := q.Get("max_price"); v != "" {
		f.MaxPrice, _ = strconv.Atoi(v)
	}

	ps, err := h.Catalog.List(ctx, f)
	if err != nil {
		writeError(w, err)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Catalog.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != auth.RoleSeller {
		writeError(w, errForbidden)
		return
	}
	var req productReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Catalog.Create(ctx, catalog.Product{
		SellerID:        id.ID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        catalog.Category(req.Category),
		Price:           req.Price,
		Stock:           req.Stock,
		QuantityPerUnit: req.QuantityPerUnit,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	productID := chi.URLParam(r, "id")

	var req productReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Catalog.Get(ctx, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	if cur.SellerID != id.ID {
		writeError(w, errForbidden)
		return
	}

	p, err := h.Catalog.Update(ctx, catalog.Product{
		ID:              productID,
		SellerID:        cur.SellerID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        catalog.Category(req.Category),
		Price:           req.Price,
		Stock:           req.Stock,
		QuantityPerUnit: req.QuantityPerUnit,
		ImageURL:        req.ImageURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	productID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cur, err := h.Catalog.Get(ctx, productID)
	if err != nil {
		writeError(w, err)
		return
	}
	if cur.SellerID != id.ID {
		writeError(w, errForbidden)
		return
	}
	if err := h.Catalog.Delete(ctx, productID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductsHandler) listSeller(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.IdentityFrom(r.Context())
	if id.Role != auth.RoleSeller {
		writeError(w, errForbidden)
		return
	}
	var req sellerProductsReq
	if err := decodeStrict(r, &req); err != nil {
		badRequest(w, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, total, err := h.Catalog.ListBySeller(ctx, id.ID, req.Page, req.Limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if ps == nil {
		ps = []catalog.Product{}
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit
	writeJSON(w, http.StatusOK, map[string]any{
		"products":    ps,
		"total_pages": totalPages,
	})
}
