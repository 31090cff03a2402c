// Package redis caches the delivery pricing settings in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	goredis "github.com/redis/go-redis/v9"
)

const (
	// SettingsKey holds the JSON encoded settings.
	SettingsKey = "delivery:settings"

	// DefaultSettingsTTL keeps administrator edits visible within seconds.
	DefaultSettingsTTL = 30 * time.Second
)

type settingsPayload struct {
	BaseFee  string `json:"base_fee"`
	PerKmFee string `json:"per_km_fee"`
}

// CachedSettingsProvider reads through Redis to the wrapped provider. Redis
// is never the source of truth: a Redis failure falls back to the provider
// and is only logged.
type CachedSettingsProvider struct {
	client *goredis.Client
	next   ports.DeliverySettingsProvider
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedSettingsProvider(
	client *goredis.Client,
	next ports.DeliverySettingsProvider,
	ttl time.Duration,
	logger *slog.Logger,
) (*CachedSettingsProvider, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("redis client")
	}
	if next == nil {
		return nil, errs.NewValueIsRequiredError("settings provider")
	}
	if ttl <= 0 {
		ttl = DefaultSettingsTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSettingsProvider{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.With("component", "settings_cache"),
	}, nil
}

func (p *CachedSettingsProvider) CurrentDeliverySettings(ctx context.Context) (catalog.DeliverySettings, error) {
	cached, err := p.load(ctx)
	switch {
	case err == nil:
		return cached, nil
	case errors.Is(err, goredis.Nil):
	default:
		p.logger.WarnContext(ctx, "settings cache read failed", "error", err)
	}

	settings, err := p.next.CurrentDeliverySettings(ctx)
	if err != nil {
		return catalog.DeliverySettings{}, err
	}

	if err = p.store(ctx, settings); err != nil {
		p.logger.WarnContext(ctx, "settings cache write failed", "error", err)
	}
	return settings, nil
}

// Invalidate drops the cached copy so the next read goes to the provider.
func (p *CachedSettingsProvider) Invalidate(ctx context.Context) error {
	return p.client.Del(ctx, SettingsKey).Err()
}

func (p *CachedSettingsProvider) load(ctx context.Context) (catalog.DeliverySettings, error) {
	raw, err := p.client.Get(ctx, SettingsKey).Bytes()
	if err != nil {
		return catalog.DeliverySettings{}, err
	}

	var payload settingsPayload
	if err = json.Unmarshal(raw, &payload); err != nil {
		return catalog.DeliverySettings{}, err
	}

	base, baseErr := kernel.MoneyFromString(payload.BaseFee)
	perKm, perKmErr := kernel.MoneyFromString(payload.PerKmFee)
	if err = errors.Join(baseErr, perKmErr); err != nil {
		return catalog.DeliverySettings{}, err
	}
	return catalog.DeliverySettings{BaseFee: base, PerKmFee: perKm}, nil
}

func (p *CachedSettingsProvider) store(ctx context.Context, settings catalog.DeliverySettings) error {
	raw, err := json.Marshal(settingsPayload{
		BaseFee:  settings.BaseFee.String(),
		PerKmFee: settings.PerKmFee.String(),
	})
	if err != nil {
		return err
	}
	return p.client.Set(ctx, SettingsKey, raw, p.ttl).Err()
}
