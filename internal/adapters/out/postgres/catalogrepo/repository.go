package catalogrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCatalogRepository implements ports.CatalogReader, ports.UserDirectory
// and ports.DeliverySettingsProvider. The Save methods exist for seeding and
// for the administration tooling; the order engine only reads.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) GetRestaurant(ctx context.Context, id kernel.UUID) (catalog.Restaurant, error) {
	if err := id.Validate(); err != nil {
		return catalog.Restaurant{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Restaurant{}, errs.NewObjectNotFoundError("restaurant", id.String())
		}
		return catalog.Restaurant{}, err
	}

	return restaurantToDomain(dto)
}

func (r *GormCatalogRepository) GetProduct(ctx context.Context, id kernel.UUID) (catalog.Product, error) {
	if err := id.Validate(); err != nil {
		return catalog.Product{}, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, errs.NewObjectNotFoundError("product", id.String())
		}
		return catalog.Product{}, err
	}

	return productToDomain(dto)
}

func (r *GormCatalogRepository) GetUser(ctx context.Context, id kernel.UUID) (user.User, error) {
	if err := id.Validate(); err != nil {
		return user.User{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return user.User{}, err
	}

	return userToDomain(dto)
}

// CurrentDeliverySettings reads the settings row, falling back to
// catalog.DefaultDeliverySettings when no administrator has stored one yet.
func (r *GormCatalogRepository) CurrentDeliverySettings(ctx context.Context) (catalog.DeliverySettings, error) {
	var dto DeliverySettingsDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.DefaultDeliverySettings(), nil
	}
	if err != nil {
		return catalog.DeliverySettings{}, err
	}

	return settingsToDomain(dto)
}

func (r *GormCatalogRepository) SaveRestaurant(ctx context.Context, restaurant catalog.Restaurant) error {
	if err := restaurant.ID.Validate(); err != nil {
		return err
	}
	dto := restaurantFromDomain(restaurant)
	return r.db.WithContext(ctx).Save(&dto).Error
}

func (r *GormCatalogRepository) SaveProduct(ctx context.Context, product catalog.Product) error {
	if err := errors.Join(product.ID.Validate(), product.RestaurantID.Validate()); err != nil {
		return err
	}
	dto := productFromDomain(product)
	return r.db.WithContext(ctx).Save(&dto).Error
}

func (r *GormCatalogRepository) SaveUser(ctx context.Context, u user.User) error {
	if err := u.ID.Validate(); err != nil {
		return err
	}
	dto := userFromDomain(u)
	return r.db.WithContext(ctx).Save(&dto).Error
}

// SaveDeliverySettings replaces the singleton settings row.
func (r *GormCatalogRepository) SaveDeliverySettings(ctx context.Context, settings catalog.DeliverySettings) error {
	dto := DeliverySettingsDTO{
		ID:       settingsRowID,
		BaseFee:  settings.BaseFee.Decimal(),
		PerKmFee: settings.PerKmFee.Decimal(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"base_fee", "per_km_fee", "updated_at"}),
	}).Create(&dto).Error
}
