package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/model"
	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/pkg/database"
)

const selectRecords = `
    SELECT id, product_id, product_name, quantity, unit_price, total_price, reference, purchase_date
    FROM purchase_history`

type SQLRepository struct {
	DB       *sqlx.DB
	getter   *trmsqlx.CtxGetter
	rowLocks bool
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{
		DB:       db,
		getter:   trmsqlx.DefaultCtxGetter,
		rowLocks: database.IsPostgres(db),
	}
}

func (r *SQLRepository) conn(ctx context.Context) trmsqlx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.DB)
}

func (r *SQLRepository) LockStock(ctx context.Context, productID int64) (*model.Product, error) {
	query := `
        SELECT id, name, price, quantity, category_id, created_at, updated_at
        FROM products
        WHERE id = ?`
	if r.rowLocks {
		query += ` FOR UPDATE`
	}

	var p model.Product
	if err := r.conn(ctx).GetContext(ctx, &p, r.DB.Rebind(query), productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Storage("read product stock", err)
	}
	return &p, nil
}

func (r *SQLRepository) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	query := r.DB.Rebind(`
        UPDATE products
        SET quantity = quantity - ?
        WHERE id = ? AND quantity >= ?
    `)
	res, err := r.conn(ctx).ExecContext(ctx, query, quantity, productID, quantity)
	if err != nil {
		return false, apperror.Storage("decrement stock", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperror.Storage("decrement stock", err)
	}
	return n == 1, nil
}

func (r *SQLRepository) InsertRecord(ctx context.Context, rec *model.PurchaseRecord) error {
	query := r.DB.Rebind(`
        INSERT INTO purchase_history (product_id, product_name, quantity, unit_price, total_price, reference, purchase_date)
        VALUES (?, ?, ?, ?, ?, ?, ?)
        RETURNING id
    `)
	err := r.conn(ctx).GetContext(ctx, &rec.ID, query,
		rec.ProductID, rec.ProductName, rec.Quantity, rec.UnitPrice, rec.TotalPrice, rec.Reference, rec.PurchaseDate)
	return apperror.Storage("append purchase record", err)
}

func (r *SQLRepository) FindByReference(ctx context.Context, reference string) (*model.PurchaseRecord, error) {
	var rec model.PurchaseRecord
	err := r.conn(ctx).GetContext(ctx, &rec, r.DB.Rebind(selectRecords+` WHERE reference = ?`), reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Storage("select purchase by reference", err)
	}
	return &rec, nil
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.PurchaseFilters) ([]model.PurchaseRecord, error) {
	conditions := []string{}
	args := []interface{}{}

	if f != nil {
		if f.ProductID != 0 {
			conditions = append(conditions, "product_id = ?")
			args = append(args, f.ProductID)
		}
		if !f.Since.IsZero() {
			conditions = append(conditions, "purchase_date >= ?")
			args = append(args, f.Since.UTC())
		}
	}

	query := selectRecords
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY purchase_date DESC, id DESC"
	if f != nil && f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	records := []model.PurchaseRecord{}
	if err := r.conn(ctx).SelectContext(ctx, &records, r.DB.Rebind(query), args...); err != nil {
		return nil, apperror.Storage("list purchases", err)
	}
	return records, nil
}
