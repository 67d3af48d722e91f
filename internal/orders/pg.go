package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

func (s *PGStore) Create(ctx context.Context, o Order) (Order, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (id, buyer_id, customer_name, customer_email, customer_phone,
		                    customer_address, customer_city, customer_postal_code,
		                    payment_method, total, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at`,
		o.ID, o.BuyerID, o.Customer.Name, o.Customer.Email, o.Customer.Phone,
		o.Customer.Address, o.Customer.City, o.Customer.PostalCode,
		o.PaymentMethod, o.Total, o.Status).Scan(&o.CreatedAt)
	if err != nil {
		return Order{}, err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, seller_id, name, quantity, unit_price)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			o.ID, it.ProductID, it.SellerID, it.Name, it.Quantity, it.UnitPrice); err != nil {
			return Order{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}

const orderCols = `id, buyer_id, customer_name, customer_email, customer_phone,
customer_address, customer_city, customer_postal_code, payment_method, total, status, created_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.BuyerID, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Customer.Address, &o.Customer.City, &o.Customer.PostalCode,
		&o.PaymentMethod, &o.Total, &o.Status, &o.CreatedAt)
	return o, err
}

func (s *PGStore) Get(ctx context.Context, id string) (Order, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+orderCols+` FROM orders WHERE id=$1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, NotFoundError{OrderID: id}
	}
	if err != nil {
		return Order{}, err
	}
	if err := s.loadItems(ctx, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *PGStore) UpdateStatus(ctx context.Context, id string, status Status) (Order, error) {
	row := s.DB.QueryRow(ctx, `
		UPDATE orders SET status=$2 WHERE id=$1
		RETURNING `+orderCols, id, status)
	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, NotFoundError{OrderID: id}
	}
	if err != nil {
		return Order{}, err
	}
	if err := s.loadItems(ctx, &o); err != nil {
		return Order{}, err
	}
	return o, nil
}

func (s *PGStore) ListByBuyer(ctx context.Context, buyerID string) ([]Order, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT `+orderCols+` FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`, buyerID)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, rows)
}

func (s *PGStore) ListBySeller(ctx context.Context, sellerID string, limit int) ([]Order, error) {
	q := `
		SELECT DISTINCT ` + prefixCols("o") + `
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE i.seller_id = $1
		ORDER BY o.created_at DESC`
	args := []any{sellerID}
	if limit > 0 {
		q += ` LIMIT $2`
		args = append(args, limit)
	}
	rows, err := s.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return s.collect(ctx, rows)
}

func prefixCols(alias string) string {
	return alias + `.id, ` + alias + `.buyer_id, ` + alias + `.customer_name, ` + alias + `.customer_email, ` +
		alias + `.customer_phone, ` + alias + `.customer_address, ` + alias + `.customer_city, ` +
		alias + `.customer_postal_code, ` + alias + `.payment_method, ` + alias + `.total, ` +
		alias + `.status, ` + alias + `.created_at`
}

func (s *PGStore) collect(ctx context.Context, rows pgx.Rows) ([]Order, error) {
	defer rows.Close()
	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := s.loadItems(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *PGStore) loadItems(ctx context.Context, o *Order) error {
	rows, err := s.DB.Query(ctx, `
		SELECT product_id, seller_id, name, quantity, unit_price
		FROM order_items WHERE order_id=$1`, o.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.ProductID, &it.SellerID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return err
		}
		o.Items = append(o.Items, it)
	}
	return rows.Err()
}
