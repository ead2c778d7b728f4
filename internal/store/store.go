package store

import (
	"context"
	"errors"
	"strings"

	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
)

// ErrNotFound is returned when the referenced product id does not exist.
var ErrNotFound = errors.New("product not found")

// Store owns the authoritative product collection. Every write
// re-validates its payload; a record that fails the schema never reaches
// storage, no matter what the caller already checked. Operations are
// atomic with respect to each other.
type Store interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id int) (*model.Product, error)
	Create(ctx context.Context, in schema.ProductInput) (*model.Product, error)
	Update(ctx context.Context, id int, in schema.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Record builds the persisted form of a validated payload: nome trimmed,
// descricao normalized to "", estoque defaulted, preco in canonical
// two-decimal text.
func Record(id int, in schema.ProductInput) model.Product {
	return model.Product{
		ID:        id,
		Nome:      strings.TrimSpace(in.Nome),
		Descricao: in.DescricaoOrEmpty(),
		Preco:     in.CanonicalPreco(),
		Categoria: in.Categoria,
		Estoque:   in.EstoqueOrZero(),
		Unidade:   in.Unidade,
	}
}
