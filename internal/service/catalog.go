package service

import (
	"context"

	"auction-storefront/internal/model"
	"auction-storefront/internal/repository"
)

// CatalogService handles products, coin packages, payment methods and the
// storefront settings.
type CatalogService struct {
	products *repository.ProductRepository
	packages *repository.PackageRepository
	methods  *repository.PaymentMethodRepository
	settings *repository.SettingsRepository
}

// NewCatalogService creates a new CatalogService instance.
func NewCatalogService(products *repository.ProductRepository, packages *repository.PackageRepository, methods *repository.PaymentMethodRepository, settings *repository.SettingsRepository) *CatalogService {
	return &CatalogService{
		products: products,
		packages: packages,
		methods:  methods,
		settings: settings,
	}
}

// ListProducts returns every auction item.
func (s *CatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.GetAll(ctx)
}

// GetProduct returns a single auction item.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	return s.products.GetByID(ctx, id)
}

// AddProduct creates a new auction item.
func (s *CatalogService) AddProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	return s.products.Create(ctx, product)
}

// ListActivePackages returns the packages offered to end users, cheapest
// first.
func (s *CatalogService) ListActivePackages(ctx context.Context) ([]model.CoinPackage, error) {
	return s.packages.GetActive(ctx)
}

// ListAllPackages returns every package, active or not, cheapest first.
func (s *CatalogService) ListAllPackages(ctx context.Context) ([]model.CoinPackage, error) {
	return s.packages.GetAll(ctx)
}

// GetPackage returns a single coin package.
func (s *CatalogService) GetPackage(ctx context.Context, id int64) (*model.CoinPackage, error) {
	return s.packages.GetByID(ctx, id)
}

// AddPackage creates a new coin package.
func (s *CatalogService) AddPackage(ctx context.Context, pkg model.CoinPackage) (*model.CoinPackage, error) {
	return s.packages.Create(ctx, pkg)
}

// UpdatePackage overwrites an existing coin package.
func (s *CatalogService) UpdatePackage(ctx context.Context, id int64, pkg model.CoinPackage) (*model.CoinPackage, error) {
	return s.packages.Update(ctx, id, pkg)
}

// DeletePackage removes a coin package.
func (s *CatalogService) DeletePackage(ctx context.Context, id int64) error {
	return s.packages.Delete(ctx, id)
}

// ListActivePaymentMethods returns the payment methods offered to end
// users.
func (s *CatalogService) ListActivePaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	return s.methods.GetActive(ctx)
}

// VodafoneNumbers returns the configured Vodafone Cash receiver numbers.
func (s *CatalogService) VodafoneNumbers(ctx context.Context) ([]string, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	return settings.VodafoneCashNumbers, nil
}

// UpdateVodafoneNumbers replaces the configured receiver numbers. The
// numbers are also mirrored into the vodafone_cash payment method so the
// payment submission flow shows the same list.
func (s *CatalogService) UpdateVodafoneNumbers(ctx context.Context, numbers []string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	settings.VodafoneCashNumbers = numbers
	if err := s.settings.Save(ctx, settings); err != nil {
		return err
	}

	methods, err := s.methods.GetAll(ctx)
	if err != nil {
		return err
	}
	for i := range methods {
		if methods[i].Type == "vodafone_cash" {
			methods[i].AccountNumbers = numbers
			return s.methods.SaveAll(ctx, methods)
		}
	}
	return nil
}
