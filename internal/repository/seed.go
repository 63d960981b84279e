package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"auction-storefront/internal/auth"
	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// Seeder populates a fresh store with sample data on first boot. Existing
// data is preserved: seeding is skipped once the initialized marker is set.
type Seeder struct {
	store    kv.Store
	users    *UserRepository
	products *ProductRepository
	packages *PackageRepository
	methods  *PaymentMethodRepository
	settings *SettingsRepository
}

// NewSeeder creates a Seeder over the given store and repositories.
func NewSeeder(store kv.Store, users *UserRepository, products *ProductRepository, packages *PackageRepository, methods *PaymentMethodRepository, settings *SettingsRepository) *Seeder {
	return &Seeder{
		store:    store,
		users:    users,
		products: products,
		packages: packages,
		methods:  methods,
		settings: settings,
	}
}

// Run seeds the database if it has not been initialized yet.
func (s *Seeder) Run(ctx context.Context) error {
	data, err := s.store.Get(ctx, kv.KeyInitialized)
	if err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
		return fmt.Errorf("check initialized marker: %w", err)
	}
	if string(data) == "true" {
		log.Debug().Msg("store already initialized, skipping seed")
		return nil
	}

	log.Info().Msg("seeding store with sample data")

	if err := s.seedUsers(ctx); err != nil {
		return err
	}
	if err := s.seedProducts(ctx); err != nil {
		return err
	}
	if err := s.seedPackages(ctx); err != nil {
		return err
	}
	if err := s.seedPaymentMethods(ctx); err != nil {
		return err
	}
	if err := s.seedSettings(ctx); err != nil {
		return err
	}

	if err := s.store.Set(ctx, kv.KeyInitialized, []byte("true")); err != nil {
		return fmt.Errorf("set initialized marker: %w", err)
	}

	log.Info().Msg("store seeded")
	return nil
}

func (s *Seeder) seedUsers(ctx context.Context) error {
	type account struct {
		name     string
		email    string
		password string
		role     model.Role
		coins    int64
	}
	accounts := []account{
		{"Admin User", "admin@winzo.com", "admin123", model.RoleAdmin, 10000},
		{"Test User", "user@winzo.com", "user123", model.RoleUser, 5500},
		{"Quick User", "1", "1", model.RoleUser, 2000},
	}

	users := make([]model.DatabaseUser, 0, len(accounts))
	for i, a := range accounts {
		hash, err := auth.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		users = append(users, model.DatabaseUser{
			User: model.User{
				ID:    int64(i + 1),
				Name:  a.name,
				Email: a.email,
				Role:  a.role,
				Coins: a.coins,
			},
			Password: hash,
		})
	}
	return s.users.SaveAll(ctx, users)
}

func (s *Seeder) seedProducts(ctx context.Context) error {
	now := time.Now()
	products := []model.Product{
		{
			ID:           1,
			Name:         "iPhone 15 Pro Max",
			Description:  "Latest iPhone with 256GB storage, Titanium finish",
			Image:        "https://via.placeholder.com/300x200/1a1a1a/FFD700?text=iPhone+15+Pro+Max",
			EndTime:      now.Add(2 * time.Hour),
			LowestBid:    45,
			LowestBidder: "user@test.com",
			AIHint:       "Hot item! Consider bidding between 40-50 coins for optimal chances",
		},
		{
			ID:           2,
			Name:         "MacBook Pro M3",
			Description:  "MacBook Pro with M3 chip, 16GB RAM, 512GB SSD",
			Image:        "https://via.placeholder.com/300x200/2c2c2c/FFD700?text=MacBook+Pro+M3",
			EndTime:      now.Add(48 * time.Hour),
			LowestBid:    120,
			LowestBidder: "admin@winzo.com",
			AIHint:       "Premium item, consider strategic bidding around 115-125 coins",
		},
		{
			ID:           3,
			Name:         "PlayStation 5",
			Description:  "PS5 console with extra DualSense controller",
			Image:        "https://via.placeholder.com/300x200/003791/FFD700?text=PlayStation+5",
			EndTime:      now.Add(24 * time.Hour),
			LowestBid:    60,
			LowestBidder: "user@winzo.com",
			AIHint:       "Popular item, bids cluster around 55-70 coins",
		},
	}
	return s.products.SaveAll(ctx, products)
}

func (s *Seeder) seedPackages(ctx context.Context) error {
	originalPrice := func(v float64) *float64 { return &v }
	bonus := func(v int64) *int64 { return &v }

	packages := []model.CoinPackage{
		{ID: 1, Name: "Starter Pack", Coins: 100, Price: 30, IsActive: true},
		{ID: 2, Name: "Value Pack", Coins: 350, Price: 90, OriginalPrice: originalPrice(105), Bonus: bonus(50), Popular: true, IsActive: true},
		{ID: 3, Name: "Pro Pack", Coins: 750, Price: 180, OriginalPrice: originalPrice(225), Bonus: bonus(150), IsActive: true},
		{ID: 4, Name: "Mega Pack", Coins: 2000, Price: 450, OriginalPrice: originalPrice(600), Bonus: bonus(500), IsActive: false},
	}
	return s.packages.SaveAll(ctx, packages)
}

func (s *Seeder) seedPaymentMethods(ctx context.Context) error {
	methods := []model.PaymentMethod{
		{
			ID:       "vodafone_cash",
			Name:     "Vodafone Cash",
			Type:     "vodafone_cash",
			IsActive: true,
			Instructions: []string{
				"Send the exact package amount to one of the numbers below",
				"Keep the transfer reference number",
				"Submit the reference and a screenshot of the transfer",
				"Coins are credited after admin review",
			},
			AccountNumbers: []string{"01111111111", "01222222222"},
		},
		{
			ID:           "bank_transfer",
			Name:         "Bank Transfer",
			Type:         "bank_transfer",
			IsActive:     false,
			Instructions: []string{"Currently unavailable"},
		},
	}
	return s.methods.SaveAll(ctx, methods)
}

func (s *Seeder) seedSettings(ctx context.Context) error {
	return s.settings.Save(ctx, &model.Settings{
		VodafoneCashNumbers: []string{"01111111111", "01222222222"},
		StoreSettings: model.StoreSettings{
			IsStoreEnabled: true,
			SupportContact: "support@winzo.com",
		},
	})
}
