package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct{ DB *pgxpool.Pool }

const productCols = `id, seller_id, name, description, category, price, stock, quantity_per_unit, image_url, created_at, updated_at`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Stock, &p.QuantityPerUnit, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *PGStore) Create(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	p.ID = uuid.NewString()
	row := s.DB.QueryRow(ctx, `
		INSERT INTO products (id, seller_id, name, description, category, price, stock, quantity_per_unit, image_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING `+productCols,
		p.ID, p.SellerID, p.Name, p.Description, p.Category, p.Price, p.Stock, p.QuantityPerUnit, p.ImageURL)
	return scanProduct(row)
}

func (s *PGStore) Get(ctx context.Context, id string) (Product, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, NotFoundError{ProductID: id}
	}
	return p, err
}

func (s *PGStore) Update(ctx context.Context, p Product) (Product, error) {
	if err := p.Validate(); err != nil {
		return Product{}, err
	}
	row := s.DB.QueryRow(ctx, `
		UPDATE products
		SET name=$2, description=$3, category=$4, price=$5, stock=$6, quantity_per_unit=$7, image_url=$8, updated_at=now()
		WHERE id=$1
		RETURNING `+productCols,
		p.ID, p.Name, p.Description, p.Category, p.Price, p.Stock, p.QuantityPerUnit, p.ImageURL)
	out, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, NotFoundError{ProductID: p.ID}
	}
	return out, err
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{ProductID: id}
	}
	return nil
}

func (s *PGStore) List(ctx context.Context, f Filter) ([]Product, error) {
	q := `SELECT ` + productCols + ` FROM products WHERE 1=1`
	args := []any{}
	n := 0
	add := func(clause string, v any) {
		n++
		q += fmt.Sprintf(" AND "+clause, n)
		args = append(args, v)
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Keyword != "" {
		add("name ILIKE '%%' || $%d || '%%'", f.Keyword)
	}
	if f.MinPrice > 0 {
		add("price >= $%d", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		add("price <= $%d", f.MaxPrice)
	}
	switch f.Sort {
	case SortPriceAsc:
		q += ` ORDER BY price ASC`
	case SortPriceDesc:
		q += ` ORDER BY price DESC`
	default:
		q += ` ORDER BY created_at DESC`
	}

	rows, err := s.DB.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PGStore) ListBySeller(ctx context.Context, sellerID string, page, limit int) ([]Product, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	var total int
	if err := s.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE seller_id=$1`, sellerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := s.DB.Query(ctx, `
		SELECT `+productCols+` FROM products
		WHERE seller_id=$1
		ORDER BY created_at DESC
		OFFSET $2 LIMIT $3`, sellerID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// DecrementStock performs the conditional decrement as one statement so two
// concurrent checkouts can never oversubscribe the same product.
func (s *PGStore) DecrementStock(ctx context.Context, id string, qty int) (int, error) {
	var remaining int
	err := s.DB.QueryRow(ctx, `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2
		RETURNING stock`, id, qty).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		// either missing or short on stock; read back to tell which
		var available int
		if err2 := s.DB.QueryRow(ctx, `SELECT stock FROM products WHERE id=$1`, id).Scan(&available); err2 != nil {
			if errors.Is(err2, pgx.ErrNoRows) {
				return 0, NotFoundError{ProductID: id}
			}
			return 0, err2
		}
		return 0, InsufficientStockError{ProductID: id, Available: available, Requested: qty}
	}
	if err != nil {
		return 0, err
	}
	return remaining, nil
}

// IncrementStock reverses a decrement when a later step of the same order
// fails (compensating rollback).
func (s *PGStore) IncrementStock(ctx context.Context, id string, qty int) error {
	ct, err := s.DB.Exec(ctx, `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id=$1`, id, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return NotFoundError{ProductID: id}
	}
	return nil
}
