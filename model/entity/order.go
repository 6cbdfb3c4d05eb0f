package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus accepts any casing of a known status.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case OrderPending, OrderConfirmed, OrderProcessing, OrderDelivered, OrderCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

type DeliveryAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// IsZero reports whether no address field is filled in.
func (a *DeliveryAddress) IsZero() bool {
	return a == nil || *a == DeliveryAddress{}
}

// OrderItem is the snapshot of a cart line taken when the order is placed.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
}

func (i OrderItem) LineTotal() float64 {
	return i.Price * i.Quantity
}

type Order struct {
	ID              string           `json:"_id,omitempty"`
	OwnerEmail      string           `json:"email"`
	Name            string           `json:"name"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress"`
	Items           []OrderItem      `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
	Status          OrderStatus      `json:"status"`
	OrderDate       time.Time        `json:"orderDate"`
}

func (o *Order) UnmarshalJSON(data []byte) error {
	type alias Order
	aux := struct {
		*alias
		AltID string `json:"id"`
	}{alias: (*alias)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.ID = wireID(o.ID, aux.AltID)
	return nil
}

// SnapshotLines copies cart lines into order items and sums their totals.
func SnapshotLines(lines []CartLine) ([]OrderItem, float64) {
	items := make([]OrderItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		items = append(items, OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Image:     l.Image,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
		})
		total += l.LineTotal()
	}
	return items, total
}
