// cmd/seeder/catalog.go
package main

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/services"
)

// RowError describes a catalog row that could not be imported
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// loadCatalogFile opens an xlsx catalog whose first sheet has the columns
// Name, Category, Description after a header row.
func loadCatalogFile(path string, opts ...services.Option) ([]domain.Product, []RowError, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	return parseCatalog(file, opts...)
}

func parseCatalog(file *xlsx.File, opts ...services.Option) ([]domain.Product, []RowError, error) {
	if len(file.Sheets) == 0 {
		return nil, nil, fmt.Errorf("no sheets found in catalog file")
	}
	sheet := file.Sheets[0]

	catalog := services.NewCatalog(nil, opts...)
	seen := make(map[string]bool)
	var rowErrors []RowError

	rowIdx := 0
	err := sheet.ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		// Skip header
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			if s, err := c.FormattedValue(); err == nil {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(c.String())
		}

		name := get(0)
		if name == "" {
			return nil
		}
		key := strings.ToLower(name)
		if seen[key] {
			rowErrors = append(rowErrors, RowError{Row: rowIdx, Err: fmt.Errorf("duplicate product %q", name)})
			return nil
		}

		category, err := domain.ParseCategory(get(1))
		if err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowIdx, Err: err})
			return nil
		}

		if _, err := catalog.AddProduct(domain.NewProductInput{
			Name:        name,
			Category:    category,
			Description: get(2),
		}); err != nil {
			rowErrors = append(rowErrors, RowError{Row: rowIdx, Err: err})
			return nil
		}
		seen[key] = true
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog rows: %w", err)
	}

	return catalog.ListProducts(), rowErrors, nil
}
