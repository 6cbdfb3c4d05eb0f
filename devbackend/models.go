// Package devbackend is a local implementation of the grocery REST backend,
// persisted with gorm. Documents use string "_id" keys and mutation responses
// carry insertedId, modifiedCount or deletedCount.
package devbackend

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID          string `gorm:"primaryKey;size:36" json:"_id"`
	Name        string `gorm:"size:255;not null" json:"name"`
	Image       string `gorm:"size:1024" json:"image"`
	Description string `gorm:"type:text" json:"description,omitempty"`
}

// Product stores price as raw JSON: a number or a list of size/price pairs.
type Product struct {
	ID        string         `gorm:"primaryKey;size:36" json:"_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Price     datatypes.JSON `gorm:"type:text" json:"price"`
	Image     string         `gorm:"size:1024" json:"image"`
	Category  string         `gorm:"size:255;index" json:"category,omitempty"`
	CreatedAt *time.Time     `json:"createdAt,omitempty"`
}

type CartLine struct {
	ID        string  `gorm:"primaryKey;size:36" json:"_id"`
	ProductID string  `gorm:"size:36;index" json:"productId"`
	Name      string  `gorm:"size:255" json:"name"`
	Image     string  `gorm:"size:1024" json:"image"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
	Email     string  `gorm:"size:255;index" json:"email"`
}

func (CartLine) TableName() string { return "carts" }

type Order struct {
	ID              string         `gorm:"primaryKey;size:36" json:"_id"`
	Email           string         `gorm:"size:255;index" json:"email"`
	Name            string         `gorm:"size:255" json:"name"`
	DeliveryAddress datatypes.JSON `gorm:"type:text" json:"deliveryAddress"`
	Items           datatypes.JSON `gorm:"type:text" json:"items"`
	TotalAmount     float64        `json:"totalAmount"`
	Status          string         `gorm:"size:32" json:"status"`
	OrderDate       time.Time      `json:"orderDate"`
}

type User struct {
	ID              string         `gorm:"primaryKey;size:36" json:"_id"`
	Email           string         `gorm:"size:255;uniqueIndex" json:"email"`
	Name            string         `gorm:"size:255" json:"name"`
	ProfilePic      *string        `gorm:"size:1024" json:"profilePic"`
	DeliveryAddress datatypes.JSON `gorm:"type:text" json:"deliveryAddress,omitempty"`
}

// Migrate creates or updates the backend tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Category{}, &Product{}, &CartLine{}, &Order{}, &User{})
}
