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
	"github.com/fekuna/omnipos-inventory/internal/product/dto"
)

const selectProducts = `
    SELECT p.id, p.name, p.price, p.quantity, p.category_id, p.created_at, p.updated_at,
           c.name AS category_name
    FROM products p
    JOIN categories c ON c.id = p.category_id`

type SQLRepository struct {
	DB     *sqlx.DB
	getter *trmsqlx.CtxGetter
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{DB: db, getter: trmsqlx.DefaultCtxGetter}
}

func (r *SQLRepository) conn(ctx context.Context) trmsqlx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.DB)
}

func (r *SQLRepository) Create(ctx context.Context, p *model.Product) error {
	query := r.DB.Rebind(`
        INSERT INTO products (name, price, quantity, category_id, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?)
        RETURNING id
    `)
	err := r.conn(ctx).GetContext(ctx, &p.ID, query,
		p.Name, p.Price, p.Quantity, p.CategoryID, p.CreatedAt, p.UpdatedAt)
	return apperror.Storage("insert product", err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.conn(ctx).GetContext(ctx, &p, r.DB.Rebind(selectProducts+` WHERE p.id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Storage("select product", err)
	}
	return &p, nil
}

func (r *SQLRepository) FindByName(ctx context.Context, name string) ([]model.Product, error) {
	return r.FindAll(ctx, &dto.ProductFilters{Name: name})
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, error) {
	conditions := []string{}
	args := []interface{}{}

	if f != nil {
		if f.Name != "" {
			conditions = append(conditions, "p.name = ?")
			args = append(args, f.Name)
		}
		if f.CategoryID != 0 {
			conditions = append(conditions, "p.category_id = ?")
			args = append(args, f.CategoryID)
		}
		if f.InStockOnly {
			conditions = append(conditions, "p.quantity > 0")
		}
	}

	query := selectProducts
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.name ASC, p.id ASC"
	if f != nil && f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	products := []model.Product{}
	if err := r.conn(ctx).SelectContext(ctx, &products, r.DB.Rebind(query), args...); err != nil {
		return nil, apperror.Storage("list products", err)
	}
	return products, nil
}

func (r *SQLRepository) Update(ctx context.Context, p *model.Product) (int64, error) {
	return r.exec(ctx, "update product", `
        UPDATE products
        SET name = ?, price = ?, quantity = ?, category_id = ?, updated_at = ?
        WHERE id = ?
    `, p.Name, p.Price, p.Quantity, p.CategoryID, p.UpdatedAt, p.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) (int64, error) {
	return r.exec(ctx, "delete product", `DELETE FROM products WHERE id = ?`, id)
}

func (r *SQLRepository) DeleteByCategory(ctx context.Context, categoryID int64) (int64, error) {
	return r.exec(ctx, "delete products of category", `DELETE FROM products WHERE category_id = ?`, categoryID)
}

func (r *SQLRepository) exec(ctx context.Context, op, query string, args ...interface{}) (int64, error) {
	res, err := r.conn(ctx).ExecContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return 0, apperror.Storage(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Storage(op, err)
	}
	return n, nil
}
