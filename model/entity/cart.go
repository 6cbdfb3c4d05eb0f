package entity

import "encoding/json"

// CartLine is one entry of a user's cart. UnitPrice travels as "price" and
// OwnerEmail as "email", the backend's field names.
type CartLine struct {
	ID         string  `json:"_id"`
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	UnitPrice  float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	OwnerEmail string  `json:"email"`
}

func (l *CartLine) UnmarshalJSON(data []byte) error {
	type alias CartLine
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.ID = wireID(l.ID, aux.AltID)
	return nil
}

// LineTotal is always derived, never stored.
func (l CartLine) LineTotal() float64 {
	return l.UnitPrice * l.Quantity
}

// CartTotal sums the line totals of lines.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}

// CartLineInput is the "add to cart" payload.
type CartLineInput struct {
	ProductID  string  `json:"productId"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	UnitPrice  float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	OwnerEmail string  `json:"email"`
}
