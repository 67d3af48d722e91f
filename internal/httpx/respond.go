package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pasalhub/pasal/internal/auth"
	"github.com/pasalhub/pasal/internal/cart"
	"github.com/pasalhub/pasal/internal/catalog"
	"github.com/pasalhub/pasal/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`

	// conflict detail, present when a typed error carries it
	ProductID string `json:"product_id,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

var errForbidden = errors.New("forbidden")

// writeError maps the domain error taxonomy onto HTTP statuses and returns
// the metrics reason label for the failure.
func writeError(w http.ResponseWriter, err error) string {
	var (
		stockErr     catalog.InsufficientStockError
		productErr   catalog.NotFoundError
		orderErr     orders.NotFoundError
		contactErr   orders.InvalidContactError
		paymentErr   orders.InvalidPaymentMethodError
		quantityErr  orders.InvalidQuantityError
		dupErr       orders.DuplicateItemError
		statusErr    orders.InvalidStatusError
		transErr     orders.InvalidTransitionError
		catalogValid catalog.ValidationError
		authValid    auth.ValidationError
	)
	switch {
	case errors.As(err, &stockErr):
		writeJSON(w, http.StatusConflict, errorBody{
			Error:     stockErr.Error(),
			ProductID: stockErr.ProductID,
			Available: &stockErr.Available,
			Requested: &stockErr.Requested,
		})
		return "insufficient_stock"
	case errors.As(err, &productErr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: productErr.Error(), ProductID: productErr.ProductID})
		return "product_not_found"
	case errors.As(err, &orderErr):
		writeJSON(w, http.StatusNotFound, errorBody{Error: orderErr.Error()})
		return "order_not_found"
	case errors.Is(err, orders.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return "empty_cart"
	case errors.As(err, &contactErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: contactErr.Error()})
		return "invalid_contact"
	case errors.As(err, &paymentErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: paymentErr.Error()})
		return "invalid_payment_method"
	case errors.As(err, &quantityErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: quantityErr.Error(), ProductID: quantityErr.ProductID})
		return "invalid_quantity"
	case errors.As(err, &dupErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: dupErr.Error(), ProductID: dupErr.ProductID})
		return "duplicate_item"
	case errors.As(err, &statusErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: statusErr.Error()})
		return "invalid_status"
	case errors.As(err, &transErr):
		writeJSON(w, http.StatusConflict, errorBody{Error: transErr.Error()})
		return "invalid_transition"
	case errors.As(err, &catalogValid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: catalogValid.Error()})
		return "invalid_product"
	case errors.As(err, &authValid):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: authValid.Error()})
		return "invalid_input"
	case errors.Is(err, cart.ErrAlreadyInCart):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
		return "already_in_cart"
	case errors.Is(err, cart.ErrItemNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
		return "cart_item_not_found"
	case errors.Is(err, cart.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return "invalid_quantity"
	case errors.Is(err, auth.ErrEmailTaken):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
		return "email_taken"
	case errors.Is(err, auth.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
		return "unauthorized"
	case errors.Is(err, errForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
		return "forbidden"
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return "internal"
	}
}

// decodeStrict rejects bodies with unknown fields so malformed requests fail
// at the boundary instead of inside the workflow.
func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}
