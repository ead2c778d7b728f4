package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/feirafacil/catalogo-service/internal/metrics"
	"github.com/feirafacil/catalogo-service/internal/model"
	"github.com/feirafacil/catalogo-service/internal/schema"
	"github.com/feirafacil/catalogo-service/internal/sqs"
	"github.com/feirafacil/catalogo-service/internal/store"
)

// ProductService sits between the HTTP layer and the store. It forwards
// validated mutations, keeps the catalog counters and, when a publisher
// is configured, announces changes on the queue.
type ProductService struct {
	store     store.Store
	publisher *sqs.Publisher
}

// NewProductService creates a ProductService over the given store. The
// publisher may be nil, in which case change events are skipped.
func NewProductService(st store.Store, publisher *sqs.Publisher) *ProductService {
	return &ProductService{
		store:     st,
		publisher: publisher,
	}
}

// ListProducts returns every product in insertion order.
func (ps *ProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return ps.store.GetAll(ctx)
}

// GetProduct returns a single product or store.ErrNotFound.
func (ps *ProductService) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	return ps.store.GetByID(ctx, id)
}

// CreateProduct stores a new product from a validated payload.
func (ps *ProductService) CreateProduct(ctx context.Context, in schema.ProductInput) (*model.Product, error) {
	created, err := ps.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	ps.publish(ctx, sqs.ActionCreated, created)

	return created, nil
}

// UpdateProduct replaces an existing product's fields from a validated payload.
func (ps *ProductService) UpdateProduct(ctx context.Context, id int, in schema.ProductInput) (*model.Product, error) {
	updated, err := ps.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, sqs.ActionUpdated, updated)

	return updated, nil
}

// DeleteProduct removes a product, reporting false when the id is absent.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int) (bool, error) {
	// Fetch first so the change event can carry the product's details.
	product, err := ps.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	deleted, err := ps.store.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	metrics.ProductsDeleted.Inc()
	ps.publish(ctx, sqs.ActionDeleted, product)

	return true, nil
}

// publish sends a catalog change message. Failures are logged, never
// propagated: the mutation already happened.
func (ps *ProductService) publish(ctx context.Context, action string, p *model.Product) {
	if ps.publisher == nil {
		return
	}

	msg := sqs.ProductMessage{
		Action:    action,
		ProductID: p.ID,
		Nome:      p.Nome,
		Preco:     p.Preco,
	}
	if err := ps.publisher.PublishProductMessage(ctx, msg); err != nil {
		slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", action), slog.Int("product_id", p.ID))
	}
}
