// Package domain defines the persistence models for products and users.
// These types are mapped with GORM and form the data layer of the shop
// backend skeleton.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog item.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name.
//   - Slug: URL-friendly unique identifier; uniqueness is enforced by the
//     database and surfaces as a duplicate-key failure on conflict.
//   - Description: optional free text.
//   - PriceCents: price in minor units; avoids float rounding.
//   - Stock: units on hand.
//   - Category: coarse grouping used by list filters.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Product struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"        gorm:"type:varchar(255);not null"`
	Slug        string         `json:"slug"        gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug"`
	Description string         `json:"description" gorm:"type:text"`
	PriceCents  int64          `json:"price_cents" gorm:"not null;check:price_cents >= 0"`
	Stock       int            `json:"stock"       gorm:"not null;default:0;check:stock >= 0"`
	Category    string         `json:"category"    gorm:"type:varchar(64);index:idx_products_category"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "products" }

// User represents an account able to authenticate against the API.
// PasswordHash is a bcrypt digest and is never serialized.
type User struct {
	ID           string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Email        string         `json:"email"      gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Name         string         `json:"name"       gorm:"type:varchar(255);not null"`
	PasswordHash string         `json:"-"          gorm:"type:varchar(255);not null"`
	Role         string         `json:"role"       gorm:"type:varchar(16);not null;default:'customer';check:role IN ('customer','admin')"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }
