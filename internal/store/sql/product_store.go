package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
	"github.com/feirafacil/catalogo-service/internal/store"
)

// ProductStore implements store.Store on top of PostgreSQL. Ids come
// from the produtos serial column, so they are unique and monotonic;
// listing orders by id, which preserves insertion order.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a ProductStore over the given connection.
func NewProductStore(db *sql.DB) store.Store {
	return &ProductStore{db: db}
}

// GetAll retrieves every product in insertion order.
func (r *ProductStore) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, nome, descricao, preco, categoria, estoque, unidade FROM produtos ORDER BY id`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		var p model.Product
		err := rows.Scan(&p.ID, &p.Nome, &p.Descricao, &p.Preco, &p.Categoria, &p.Estoque, &p.Unidade)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by id.
func (r *ProductStore) GetByID(ctx context.Context, id int) (*model.Product, error) {
	query := `SELECT id, nome, descricao, preco, categoria, estoque, unidade FROM produtos WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var p model.Product
	err = stmt.QueryRowContext(ctx, id).Scan(
		&p.ID, &p.Nome, &p.Descricao, &p.Preco, &p.Categoria, &p.Estoque, &p.Unidade,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create validates the payload and inserts a new product, returning the
// stored record with its assigned id.
func (r *ProductStore) Create(ctx context.Context, in schema.ProductInput) (*model.Product, error) {
	if err := schema.Check(in); err != nil {
		return nil, err
	}

	query := `INSERT INTO produtos (nome, descricao, preco, categoria, estoque, unidade)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	p := store.Record(0, in)
	err = stmt.QueryRowContext(ctx, p.Nome, p.Descricao, p.Preco, p.Categoria, p.Estoque, p.Unidade).Scan(&p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return &p, nil
}

// Update validates the payload and replaces every field except the id.
func (r *ProductStore) Update(ctx context.Context, id int, in schema.ProductInput) (*model.Product, error) {
	if err := schema.Check(in); err != nil {
		return nil, err
	}

	query := `UPDATE produtos SET nome = $1, descricao = $2, preco = $3, categoria = $4, estoque = $5, unidade = $6
	          WHERE id = $7`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	p := store.Record(id, in)
	result, err := stmt.ExecContext(ctx, p.Nome, p.Descricao, p.Preco, p.Categoria, p.Estoque, p.Unidade, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, store.ErrNotFound
	}

	return &p, nil
}

// Delete removes a product by id, reporting false when no row matched.
func (r *ProductStore) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM produtos WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}
