// Package catalogrepo reads the restaurant, product, user and delivery
// settings tables maintained by the administration surface.
package catalogrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/catalog"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantDTO represents a restaurant row. Coordinates are nullable.
type RestaurantDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Latitude  *float64
	Longitude *float64
	IsSpecial bool
	Status    string `gorm:"type:varchar(16);not null;default:open"`
}

func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// ProductDTO represents a product row.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	IsAvailable  bool
}

func (ProductDTO) TableName() string {
	return "products"
}

// UserDTO represents an account row. RestaurantID is set for restaurant
// accounts only.
type UserDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	Role         string     `gorm:"type:varchar(32);not null"`
	IsActive     bool
	RestaurantID *uuid.UUID `gorm:"type:uuid;index"`
}

func (UserDTO) TableName() string {
	return "users"
}

// DeliverySettingsDTO is the singleton settings row (ID 1).
type DeliverySettingsDTO struct {
	ID        uint            `gorm:"primaryKey"`
	BaseFee   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	PerKmFee  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	UpdatedAt time.Time
}

func (DeliverySettingsDTO) TableName() string {
	return "app_settings"
}

const settingsRowID = 1

// Models lists every table of the package for AutoMigrate.
func Models() []any {
	return []any{&RestaurantDTO{}, &ProductDTO{}, &UserDTO{}, &DeliverySettingsDTO{}}
}

func restaurantFromDomain(r catalog.Restaurant) RestaurantDTO {
	dto := RestaurantDTO{
		ID:        r.ID.Bytes(),
		Name:      r.Name,
		IsSpecial: r.IsSpecial,
		Status:    string(r.Status),
	}
	if r.Location != nil {
		lat, lon := r.Location.Latitude(), r.Location.Longitude()
		dto.Latitude = &lat
		dto.Longitude = &lon
	}
	return dto
}

func restaurantToDomain(dto RestaurantDTO) (catalog.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Restaurant{}, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		p, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return catalog.Restaurant{}, pointErr
		}
		location = &p
	}

	return catalog.Restaurant{
		ID:        id,
		Name:      dto.Name,
		Location:  location,
		IsSpecial: dto.IsSpecial,
		Status:    catalog.RestaurantStatus(dto.Status),
	}, nil
}

func productFromDomain(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID.Bytes(),
		RestaurantID: p.RestaurantID.Bytes(),
		Name:         p.Name,
		Price:        p.Price.Decimal(),
		IsAvailable:  p.IsAvailable,
	}
}

func productToDomain(dto ProductDTO) (catalog.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.Product{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         dto.Name,
		Price:        price,
		IsAvailable:  dto.IsAvailable,
	}, nil
}

func userFromDomain(u user.User) UserDTO {
	dto := UserDTO{
		ID:       u.ID.Bytes(),
		Username: u.Username,
		Role:     string(u.Role),
		IsActive: u.IsActive,
	}
	if u.RestaurantID != nil {
		restaurantID := u.RestaurantID.Bytes()
		dto.RestaurantID = &restaurantID
	}
	return dto
}

func userToDomain(dto UserDTO) (user.User, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return user.User{}, err
	}
	u := user.User{
		ID:       id,
		Username: dto.Username,
		Role:     user.Role(dto.Role),
		IsActive: dto.IsActive,
	}
	if dto.RestaurantID != nil {
		restaurantID, restaurantErr := kernel.UUIDFromBytes(dto.RestaurantID[:])
		if restaurantErr != nil {
			return user.User{}, restaurantErr
		}
		u.RestaurantID = &restaurantID
	}
	return u, nil
}

func settingsToDomain(dto DeliverySettingsDTO) (catalog.DeliverySettings, error) {
	base, err := kernel.NewMoney(dto.BaseFee)
	if err != nil {
		return catalog.DeliverySettings{}, err
	}
	perKm, err := kernel.NewMoney(dto.PerKmFee)
	if err != nil {
		return catalog.DeliverySettings{}, err
	}
	return catalog.DeliverySettings{BaseFee: base, PerKmFee: perKm}, nil
}
