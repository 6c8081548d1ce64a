package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	trmsqlx "github.com/avito-tech/go-transaction-manager/drivers/sqlx/v2"
	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/internal/model"
)

// SQLRepository works against both PostgreSQL and SQLite. Queries are written
// with '?' placeholders and rebound for the active driver. Every call joins the
// transaction carried by ctx when there is one.
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

func (r *SQLRepository) Create(ctx context.Context, c *model.Category) error {
	query := r.DB.Rebind(`
        INSERT INTO categories (name, created_at, updated_at)
        VALUES (?, ?, ?)
        RETURNING id
    `)
	err := r.conn(ctx).GetContext(ctx, &c.ID, query, c.Name, c.CreatedAt, c.UpdatedAt)
	return apperror.Storage("insert category", err)
}

func (r *SQLRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	query := r.DB.Rebind(`SELECT id, name, created_at, updated_at FROM categories WHERE id = ?`)
	err := r.conn(ctx).GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Storage("select category", err)
	}
	return &c, nil
}

func (r *SQLRepository) FindByName(ctx context.Context, name string) ([]model.Category, error) {
	return r.FindAll(ctx, &dto.CategoryFilters{Name: name})
}

func (r *SQLRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	query := `SELECT id, name, created_at, updated_at FROM categories`
	var args []interface{}

	if f != nil && f.Name != "" {
		query += ` WHERE name = ?`
		args = append(args, f.Name)
	}
	query += ` ORDER BY name ASC, id ASC`
	if f != nil && f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	categories := []model.Category{}
	err := r.conn(ctx).SelectContext(ctx, &categories, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, apperror.Storage("list categories", err)
	}
	return categories, nil
}

func (r *SQLRepository) Update(ctx context.Context, c *model.Category) (int64, error) {
	query := r.DB.Rebind(`UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`)
	res, err := r.conn(ctx).ExecContext(ctx, query, c.Name, c.UpdatedAt, c.ID)
	if err != nil {
		return 0, apperror.Storage("update category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Storage("update category", err)
	}
	return n, nil
}

// Delete removes the category row and reports how many rows went away.
func (r *SQLRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.conn(ctx).ExecContext(ctx, r.DB.Rebind(`DELETE FROM categories WHERE id = ?`), id)
	if err != nil {
		return 0, apperror.Storage("delete category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.Storage("delete category", err)
	}
	return n, nil
}
