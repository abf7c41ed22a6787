// cmd/seeder/catalog_test.go
package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/barstock/internal/core/domain"
	"github.com/ammerola/barstock/internal/core/services"
	"github.com/ammerola/barstock/test/helpers"
)

func buildCatalogFile(t *testing.T, rows [][]string) *xlsx.File {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Catalog")
	require.NoError(t, err)

	for _, cells := range append([][]string{{"Name", "Category", "Description"}}, rows...) {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	return file
}

func TestParseCatalog(t *testing.T) {
	file := buildCatalogFile(t, [][]string{
		{"Powers Gold Label", "irish whiskey", "Pot still blend"},
		{"Smithwick's", "Irish Beer", ""},
		{"", "Wine", "blank names are ignored"},
		{"Cider", "Cider", ""},
		{"smithwick's", "Irish Beer", "duplicate"},
		{"Malbec", "Wine", "  Argentina  "},
	})

	products, rowErrors, err := parseCatalog(file, services.WithIDGenerator(helpers.SequentialIDs("p")))
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "p-1", products[0].ID)
	assert.Equal(t, domain.CategoryIrishWhiskey, products[0].Category)
	assert.Equal(t, "Pot still blend", products[0].Description)
	assert.Equal(t, "Smithwick's", products[1].Name)
	assert.Equal(t, "Argentina", products[2].Description)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}

	require.Len(t, rowErrors, 2)
	assert.Equal(t, 5, rowErrors[0].Row)
	assert.ErrorIs(t, rowErrors[0].Err, domain.ErrInvalidProduct)
	assert.Equal(t, 6, rowErrors[1].Row)
	assert.Contains(t, rowErrors[1].Error(), "duplicate")
}

func TestParseCatalog_NoSheets(t *testing.T) {
	_, _, err := parseCatalog(xlsx.NewFile())
	assert.Error(t, err)
}
