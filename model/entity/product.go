package entity

import (
	"encoding/json"
	"time"
)

// Product is a catalog item as served by the backend. A fetched product is a
// read-only snapshot; lists are replaced wholesale on refetch.
type Product struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Price     Price      `json:"price"`
	Image     string     `json:"image"`
	Category  string     `json:"category,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = wireID(p.ID, aux.AltID)
	return nil
}

// ProductInput is the create/update payload for a product.
type ProductInput struct {
	Name      string     `json:"name"`
	Price     Price      `json:"price"`
	Image     string     `json:"image,omitempty"`
	Category  string     `json:"category"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Category is a catalog category.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description,omitempty"`
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.ID = wireID(c.ID, aux.AltID)
	return nil
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

func wireID(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}
