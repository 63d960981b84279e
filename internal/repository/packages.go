package repository

import (
	"context"
	"fmt"
	"sort"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// PackageRepository handles coin package persistence.
type PackageRepository struct {
	store kv.Store
}

// NewPackageRepository creates a new PackageRepository instance.
func NewPackageRepository(store kv.Store) *PackageRepository {
	return &PackageRepository{store: store}
}

// GetAll returns every coin package sorted by price ascending.
func (r *PackageRepository) GetAll(ctx context.Context) ([]model.CoinPackage, error) {
	packages, err := loadCollection[model.CoinPackage](ctx, r.store, kv.KeyCoinPackages)
	if err != nil {
		return nil, err
	}
	sort.Slice(packages, func(i, j int) bool {
		return packages[i].Price < packages[j].Price
	})
	return packages, nil
}

// GetActive returns only packages offered to end users, sorted by price.
func (r *PackageRepository) GetActive(ctx context.Context) ([]model.CoinPackage, error) {
	packages, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := packages[:0]
	for _, p := range packages {
		if p.IsActive {
			active = append(active, p)
		}
	}
	return active, nil
}

// SaveAll replaces the whole package collection.
func (r *PackageRepository) SaveAll(ctx context.Context, packages []model.CoinPackage) error {
	return storeCollection(ctx, r.store, kv.KeyCoinPackages, packages)
}

// GetByID retrieves a package by id. Returns ErrPackageNotFound if missing.
func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*model.CoinPackage, error) {
	packages, err := loadCollection[model.CoinPackage](ctx, r.store, kv.KeyCoinPackages)
	if err != nil {
		return nil, err
	}
	for i := range packages {
		if packages[i].ID == id {
			return &packages[i], nil
		}
	}
	return nil, ErrPackageNotFound
}

// Create appends a new package with id max(existing)+1 and returns it.
func (r *PackageRepository) Create(ctx context.Context, pkg model.CoinPackage) (*model.CoinPackage, error) {
	packages, err := loadCollection[model.CoinPackage](ctx, r.store, kv.KeyCoinPackages)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(packages))
	for i := range packages {
		ids[i] = packages[i].ID
	}
	pkg.ID = nextID(ids)

	packages = append(packages, pkg)
	if err := r.SaveAll(ctx, packages); err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	return &pkg, nil
}

// Update overwrites the package with the given id and returns the result.
func (r *PackageRepository) Update(ctx context.Context, id int64, pkg model.CoinPackage) (*model.CoinPackage, error) {
	packages, err := loadCollection[model.CoinPackage](ctx, r.store, kv.KeyCoinPackages)
	if err != nil {
		return nil, err
	}
	for i := range packages {
		if packages[i].ID == id {
			pkg.ID = id
			packages[i] = pkg
			if err := r.SaveAll(ctx, packages); err != nil {
				return nil, fmt.Errorf("update package: %w", err)
			}
			return &packages[i], nil
		}
	}
	return nil, ErrPackageNotFound
}

// Delete removes the package with the given id.
func (r *PackageRepository) Delete(ctx context.Context, id int64) error {
	packages, err := loadCollection[model.CoinPackage](ctx, r.store, kv.KeyCoinPackages)
	if err != nil {
		return err
	}
	for i := range packages {
		if packages[i].ID == id {
			packages = append(packages[:i], packages[i+1:]...)
			return r.SaveAll(ctx, packages)
		}
	}
	return ErrPackageNotFound
}
