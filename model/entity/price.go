package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// PriceKind tags the shape of a Price.
type PriceKind int

const (
	PriceSingle PriceKind = iota
	PriceSized
)

func (k PriceKind) String() string {
	if k == PriceSized {
		return "sized"
	}
	return "single"
}

// SizePrice is one size/price pair of a sized product.
type SizePrice struct {
	Label  string  `json:"size" mapstructure:"size"`
	Amount float64 `json:"price" mapstructure:"price"`
}

// Price is either a single amount or a list of size/amount pairs. The zero
// value is Single(0).
//
// Wire form: a JSON number for Single, an array of {size, price} objects for
// Sized ({label, amount} is accepted too).
type Price struct {
	kind   PriceKind
	amount float64
	sizes  []SizePrice
}

func SinglePrice(amount float64) Price {
	return Price{kind: PriceSingle, amount: amount}
}

func SizedPrice(sizes ...SizePrice) Price {
	cp := make([]SizePrice, len(sizes))
	copy(cp, sizes)
	return Price{kind: PriceSized, sizes: cp}
}

func (p Price) Kind() PriceKind {
	return p.kind
}

// Amount returns the single amount. ok is false for sized prices.
func (p Price) Amount() (amount float64, ok bool) {
	if p.kind != PriceSingle {
		return 0, false
	}
	return p.amount, true
}

// Sizes returns a copy of the size/price pairs (nil for single prices).
func (p Price) Sizes() []SizePrice {
	if p.kind != PriceSized {
		return nil
	}
	cp := make([]SizePrice, len(p.sizes))
	copy(cp, p.sizes)
	return cp
}

// Size looks up a size by label, case-insensitively.
func (p Price) Size(label string) (SizePrice, bool) {
	for _, s := range p.sizes {
		if strings.EqualFold(strings.TrimSpace(s.Label), strings.TrimSpace(label)) {
			return s, true
		}
	}
	return SizePrice{}, false
}

// Bounds returns the lowest and highest amount this price can take.
func (p Price) Bounds() (min, max float64) {
	switch p.kind {
	case PriceSized:
		for i, s := range p.sizes {
			if i == 0 || s.Amount < min {
				min = s.Amount
			}
			if i == 0 || s.Amount > max {
				max = s.Amount
			}
		}
		return min, max
	default:
		return p.amount, p.amount
	}
}

// IsZero reports whether p carries no amount at all.
func (p Price) IsZero() bool {
	switch p.kind {
	case PriceSized:
		return len(p.sizes) == 0
	default:
		return p.amount == 0
	}
}

// Validate checks amounts are non-negative and sized prices have labelled entries.
func (p Price) Validate() error {
	switch p.kind {
	case PriceSized:
		if len(p.sizes) == 0 {
			return fmt.Errorf("sized price has no sizes")
		}
		seen := make(map[string]bool, len(p.sizes))
		for _, s := range p.sizes {
			label := strings.ToLower(strings.TrimSpace(s.Label))
			if label == "" {
				return fmt.Errorf("size label is required")
			}
			if seen[label] {
				return fmt.Errorf("duplicate size %q", s.Label)
			}
			seen[label] = true
			if s.Amount < 0 {
				return fmt.Errorf("size %q has a negative price", s.Label)
			}
		}
	default:
		if p.amount < 0 {
			return fmt.Errorf("price must not be negative")
		}
	}
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.kind == PriceSized {
		sizes := p.sizes
		if sizes == nil {
			sizes = []SizePrice{}
		}
		return json.Marshal(sizes)
	}
	return json.Marshal(p.amount)
}

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*p = SinglePrice(0)
		return nil
	case data[0] == '[':
		var raw []map[string]interface{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("price sizes: %w", err)
		}
		sizes, err := decodeSizes(raw)
		if err != nil {
			return err
		}
		*p = SizedPrice(sizes...)
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("price %q is not a number", s)
		}
		*p = SinglePrice(amount)
		return nil
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	*p = SinglePrice(amount)
	return nil
}

// decodeSizes maps loosely-typed size entries ("price": "12" or 12,
// "label"/"amount" aliases) onto SizePrice.
func decodeSizes(raw []map[string]interface{}) ([]SizePrice, error) {
	for _, m := range raw {
		if _, ok := m["size"]; !ok {
			if v, ok := m["label"]; ok {
				m["size"] = v
			}
		}
		if _, ok := m["price"]; !ok {
			if v, ok := m["amount"]; ok {
				m["price"] = v
			}
		}
	}
	var sizes []SizePrice
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &sizes,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("price sizes: %w", err)
	}
	return sizes, nil
}
