// Package product imports catalog products from CSV.
package product

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"grocery.GO/model/entity"
)

// Creator is satisfied by the mutation gateway.
type Creator interface {
	CreateProduct(ctx context.Context, in entity.ProductInput) (string, error)
}

// ImportOptions configures a product import run.
type ImportOptions struct {
	Workers int
	DryRun  bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Skipped   int
	Failed    int
	IDs       []string
	Warnings  []string
	TotalTime time.Duration
}

var knownColumns = map[string]bool{
	"name": true, "price": true, "sizes": true, "category": true, "image": true, "createdat": true,
}

// ImportProducts reads CSV rows (name, price, sizes, category, image) and
// creates one product per valid row through c. sizes is "label:amount|..."
// and takes precedence over price.
func ImportProducts(ctx context.Context, c Creator, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()
	if opts.Workers <= 0 {
		opts.Workers = 4
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		colIndex[h] = i
	}
	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'name' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !knownColumns[strings.ToLower(strings.TrimSpace(h))] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	inputs := make([]entity.ProductInput, 0, len(rows))
	for i, row := range rows {
		in, err := parseRow(row, colIndex)
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		inputs = append(inputs, in)
	}
	if opts.DryRun {
		result.TotalTime = time.Since(start)
		return result, nil
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(opts.Workers)
	for _, in := range inputs {
		in := in
		g.Go(func() error {
			id, err := c.CreateProduct(ctx, in)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Warnings = append(result.Warnings, fmt.Sprintf("product %q: %v", in.Name, err))
				return nil
			}
			result.Created++
			result.IDs = append(result.IDs, id)
			return nil
		})
	}
	_ = g.Wait()

	result.TotalTime = time.Since(start)
	return result, nil
}

func field(row []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, colIndex map[string]int) (entity.ProductInput, error) {
	in := entity.ProductInput{
		Name:     field(row, colIndex, "name"),
		Category: field(row, colIndex, "category"),
		Image:    field(row, colIndex, "image"),
	}
	if in.Name == "" {
		return in, fmt.Errorf("name is empty")
	}
	if sizes := field(row, colIndex, "sizes"); sizes != "" {
		p, err := ParseSizes(sizes)
		if err != nil {
			return in, err
		}
		in.Price = p
	} else {
		raw := field(row, colIndex, "price")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("price %q: not a number", raw)
		}
		in.Price = entity.SinglePrice(amount)
	}
	if ts := field(row, colIndex, "createdat"); ts != "" {
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return in, fmt.Errorf("createdAt %q: %v", ts, err)
		}
		in.CreatedAt = &t
	}
	return in, nil
}

// ParseSizes reads "1kg:10|5kg:45" into a sized price.
func ParseSizes(s string) (entity.Price, error) {
	var sizes []entity.SizePrice
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, ":")
		if i <= 0 {
			return entity.Price{}, fmt.Errorf("size %q: want label:amount", part)
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(part[i+1:]), 64)
		if err != nil {
			return entity.Price{}, fmt.Errorf("size %q: amount is not a number", part)
		}
		sizes = append(sizes, entity.SizePrice{Label: strings.TrimSpace(part[:i]), Amount: amount})
	}
	p := entity.SizedPrice(sizes...)
	if err := p.Validate(); err != nil {
		return entity.Price{}, err
	}
	return p, nil
}
