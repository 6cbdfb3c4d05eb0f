// Package catalog holds the storefront's catalog views and the pure
// filter/sort pipeline applied to them.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"grocery.GO/core/apperr"
	"grocery.GO/model/entity"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortNewest    SortKey = "newest"
)

// SortKeys lists the canonical sort keys in menu order.
func SortKeys() []SortKey {
	return []SortKey{SortNone, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest}
}

var sortAliases = map[string]SortKey{
	"":           SortNone,
	"featured":   SortNone,
	"price-asc":  SortPriceAsc,
	"price-low":  SortPriceAsc,
	"price-desc": SortPriceDesc,
	"price-high": SortPriceDesc,
	"name":       SortNameAsc,
	"name-asc":   SortNameAsc,
	"name-desc":  SortNameDesc,
	"newest":     SortNewest,
}

// ParseSortKey accepts the canonical keys and the storefront's legacy names.
func ParseSortKey(s string) (SortKey, error) {
	k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return SortNone, apperr.Validation("catalog.ParseSortKey", fmt.Sprintf("unknown sort %q", s))
	}
	return k, nil
}

// Collation language for name sorts.
var Collation = language.English

// Filter keeps items whose name contains search, case-insensitively. A blank
// search returns items itself.
func Filter(items []entity.Product, search string) []entity.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return items
	}
	out := make([]entity.Product, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), needle) {
			out = append(out, it)
		}
	}
	return out
}

// Sort returns a sorted copy. Ties keep their source order. For price sorts,
// sized-price items keep their relative order after every single-priced item.
func Sort(items []entity.Product, key SortKey) []entity.Product {
	out := make([]entity.Product, len(items))
	copy(out, items)

	switch key {
	case SortPriceAsc, SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			ai, iok := out[i].Price.Amount()
			aj, jok := out[j].Price.Amount()
			if iok != jok {
				return iok
			}
			if !iok {
				return false
			}
			if key == SortPriceAsc {
				return ai < aj
			}
			return ai > aj
		})
	case SortNameAsc, SortNameDesc:
		// Collator is not safe for concurrent use.
		c := collate.New(Collation, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			r := c.CompareString(out[i].Name, out[j].Name)
			if key == SortNameAsc {
				return r < 0
			}
			return r > 0
		})
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			ti, tj := out[i].CreatedAt, out[j].CreatedAt
			switch {
			case ti == nil:
				return false
			case tj == nil:
				return true
			}
			return ti.After(*tj)
		})
	}
	return out
}

// Query is one storefront listing request.
type Query struct {
	Search   string
	Sort     SortKey
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// Apply runs category, search, price range and sort, in that order.
func Apply(items []entity.Product, q Query) []entity.Product {
	out := items
	if slug := Slug(q.Category); slug != "" {
		filtered := make([]entity.Product, 0, len(out))
		for _, it := range out {
			if Slug(it.Category) == slug {
				filtered = append(filtered, it)
			}
		}
		out = filtered
	}
	out = Filter(out, q.Search)
	if q.MinPrice != nil || q.MaxPrice != nil {
		filtered := make([]entity.Product, 0, len(out))
		for _, it := range out {
			if inRange(it.Price, q.MinPrice, q.MaxPrice) {
				filtered = append(filtered, it)
			}
		}
		out = filtered
	}
	return Sort(out, q.Sort)
}

var spaces = regexp.MustCompile(`\s+`)

// Slug turns a category name into its URL form: "Fresh Fruit" -> "fresh-fruit".
func Slug(name string) string {
	return strings.ToLower(spaces.ReplaceAllString(strings.TrimSpace(name), "-"))
}

func inRange(p entity.Price, min, max *float64) bool {
	within := func(a float64) bool {
		return (min == nil || a >= *min) && (max == nil || a <= *max)
	}
	switch p.Kind() {
	case entity.PriceSized:
		for _, s := range p.Sizes() {
			if within(s.Amount) {
				return true
			}
		}
		return false
	default:
		a, _ := p.Amount()
		return within(a)
	}
}
