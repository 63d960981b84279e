package repository

import (
	"context"
	"fmt"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// ProductRepository handles auction item persistence.
type ProductRepository struct {
	store kv.Store
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(store kv.Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// GetAll returns every auction item.
func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	return loadCollection[model.Product](ctx, r.store, kv.KeyProducts)
}

// SaveAll replaces the whole product collection.
func (r *ProductRepository) SaveAll(ctx context.Context, products []model.Product) error {
	return storeCollection(ctx, r.store, kv.KeyProducts, products)
}

// GetByID retrieves a product by id. Returns ErrProductNotFound if missing.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// Create appends a new product with id max(existing)+1 and returns it.
func (r *ProductRepository) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	products, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(products))
	for i := range products {
		ids[i] = products[i].ID
	}
	product.ID = nextID(ids)

	products = append(products, product)
	if err := r.SaveAll(ctx, products); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// UpdateLowestBid records the displayed lowest bid and bidder for a product.
func (r *ProductRepository) UpdateLowestBid(ctx context.Context, id int64, bid float64, bidder string) error {
	products, err := r.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == id {
			products[i].LowestBid = bid
			products[i].LowestBidder = bidder
			return r.SaveAll(ctx, products)
		}
	}
	return ErrProductNotFound
}
