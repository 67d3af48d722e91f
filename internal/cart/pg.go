package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

func (s *PGStore) Add(ctx context.Context, e Entry) (Entry, error) {
	if e.Quantity < 1 {
		return Entry{}, ErrInvalidQuantity
	}
	e.ID = uuid.NewString()
	_, err := s.DB.Exec(ctx, `
		INSERT INTO cart_entries (id, buyer_id, product_id, quantity)
		VALUES ($1,$2,$3,$4)`, e.ID, e.BuyerID, e.ProductID, e.Quantity)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on (buyer_id, product_id)
		return Entry{}, ErrAlreadyInCart
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *PGStore) Get(ctx context.Context, buyerID, productID string) (Entry, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, `
		SELECT id, buyer_id, product_id, quantity FROM cart_entries
		WHERE buyer_id=$1 AND product_id=$2`, buyerID, productID).
		Scan(&e.ID, &e.BuyerID, &e.ProductID, &e.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrItemNotFound
	}
	return e, err
}

func (s *PGStore) UpdateQuantity(ctx context.Context, buyerID, productID string, qty int) (Entry, error) {
	if qty < 1 {
		return Entry{}, ErrInvalidQuantity
	}
	var e Entry
	err := s.DB.QueryRow(ctx, `
		UPDATE cart_entries SET quantity=$3
		WHERE buyer_id=$1 AND product_id=$2
		RETURNING id, buyer_id, product_id, quantity`, buyerID, productID, qty).
		Scan(&e.ID, &e.BuyerID, &e.ProductID, &e.Quantity)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrItemNotFound
	}
	return e, err
}

func (s *PGStore) Remove(ctx context.Context, buyerID, productID string) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM cart_entries WHERE buyer_id=$1 AND product_id=$2`, buyerID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *PGStore) BulkRemove(ctx context.Context, buyerID string, productIDs []string) (int, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	ct, err := s.DB.Exec(ctx, `
		DELETE FROM cart_entries WHERE buyer_id=$1 AND product_id = ANY($2)`, buyerID, productIDs)
	if err != nil {
		return 0, err
	}
	return int(ct.RowsAffected()), nil
}

func (s *PGStore) ListByBuyer(ctx context.Context, buyerID string) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, buyer_id, product_id, quantity FROM cart_entries WHERE buyer_id=$1`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.BuyerID, &e.ProductID, &e.Quantity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
