package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/model"
)

// SQLRepository runs each report section as one read-only statement; sections
// are not required to see the same snapshot.
type SQLRepository struct {
	DB *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db}
}

func (r *SQLRepository) InventoryLines(ctx context.Context) ([]model.InventoryLine, error) {
	query := `
        SELECT id, name, quantity, price
        FROM products
        ORDER BY quantity * price DESC, name ASC, id ASC
    `
	lines := []model.InventoryLine{}
	if err := r.DB.SelectContext(ctx, &lines, query); err != nil {
		return nil, apperror.Storage("inventory summary", err)
	}
	return lines, nil
}

// SalesLines groups the ledger by product. Lines for deleted products keep the
// name captured at purchase time.
func (r *SQLRepository) SalesLines(ctx context.Context, since time.Time) ([]model.SalesLine, error) {
	query := r.DB.Rebind(`
        SELECT ph.product_id,
               COALESCE(p.name, MAX(ph.product_name)) AS name,
               SUM(ph.quantity)                       AS quantity,
               SUM(ph.total_price)                    AS total
        FROM purchase_history ph
        LEFT JOIN products p ON p.id = ph.product_id
        WHERE ph.purchase_date >= ?
        GROUP BY ph.product_id, p.name
        ORDER BY total DESC, ph.product_id ASC
    `)
	lines := []model.SalesLine{}
	if err := r.DB.SelectContext(ctx, &lines, query, since.UTC()); err != nil {
		return nil, apperror.Storage("sales summary", err)
	}
	return lines, nil
}

func (r *SQLRepository) LowStockLines(ctx context.Context, threshold int) ([]model.LowStockLine, error) {
	query := r.DB.Rebind(`
        SELECT id, name, quantity
        FROM products
        WHERE quantity <= ?
        ORDER BY quantity ASC, name ASC, id ASC
    `)
	lines := []model.LowStockLine{}
	if err := r.DB.SelectContext(ctx, &lines, query, threshold); err != nil {
		return nil, apperror.Storage("low stock report", err)
	}
	return lines, nil
}
