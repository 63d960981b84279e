package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auction-storefront/internal/kv"
	"auction-storefront/internal/model"
)

// PaymentMethodRepository handles payment method configuration records.
type PaymentMethodRepository struct {
	store kv.Store
}

// NewPaymentMethodRepository creates a new PaymentMethodRepository instance.
func NewPaymentMethodRepository(store kv.Store) *PaymentMethodRepository {
	return &PaymentMethodRepository{store: store}
}

// GetAll returns every configured payment method.
func (r *PaymentMethodRepository) GetAll(ctx context.Context) ([]model.PaymentMethod, error) {
	return loadCollection[model.PaymentMethod](ctx, r.store, kv.KeyPaymentMethods)
}

// GetActive returns the payment methods offered to end users.
func (r *PaymentMethodRepository) GetActive(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	active := methods[:0]
	for _, m := range methods {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

// SaveAll replaces the whole payment method collection.
func (r *PaymentMethodRepository) SaveAll(ctx context.Context, methods []model.PaymentMethod) error {
	return storeCollection(ctx, r.store, kv.KeyPaymentMethods, methods)
}

// SettingsRepository handles the singleton settings record.
type SettingsRepository struct {
	store kv.Store
}

// NewSettingsRepository creates a new SettingsRepository instance.
func NewSettingsRepository(store kv.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the settings record; a never-written record decodes to the
// zero value.
func (r *SettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	data, err := r.store.Get(ctx, kv.KeySettings)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return &model.Settings{}, nil
		}
		return nil, err
	}

	var settings model.Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	return &settings, nil
}

// Save persists the settings record.
func (r *SettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return r.store.Set(ctx, kv.KeySettings, data)
}
