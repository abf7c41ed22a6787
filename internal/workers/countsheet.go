// internal/workers/countsheet.go
package workers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/barstock/internal/core/domain"
)

const (
	countSheetName   = "Count"
	summarySheetName = "Summary"
)

var countSheetHeaders = []string{
	"Product ID", "Product", "Category", "Full", "Partial", "Total", "Status", "Counted At",
}

// BuildCountSheet renders an archived session as an xlsx workbook
func BuildCountSheet(h *domain.SessionHistory) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(countSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}
	addHeaderRow(sheet, countSheetHeaders)

	totals := make(map[domain.Category]decimal.Decimal)
	for _, rec := range h.Records {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.ProductID)
		row.AddCell().SetString(rec.ProductName)
		row.AddCell().SetString(string(rec.Category))
		row.AddCell().SetInt(rec.FullBottles)
		row.AddCell().SetFloat(rec.PartialBottle)
		row.AddCell().SetFloat(rec.StockLevel)
		row.AddCell().SetString(string(domain.ClassifyStock(rec.StockLevel)))
		if rec.UpdatedAt.IsZero() {
			row.AddCell().SetString("")
		} else {
			row.AddCell().SetString(rec.UpdatedAt.UTC().Format(time.RFC3339))
		}

		totals[rec.Category] = totals[rec.Category].Add(decimal.NewFromFloat(rec.StockLevel))
	}
	for i := range countSheetHeaders {
		sheet.SetColWidth(i+1, i+1, 16)
	}

	summary, err := file.AddSheet(summarySheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add summary sheet: %w", err)
	}
	addKeyValue(summary, "Session", h.ID)
	addKeyValue(summary, "Started", h.StartDate.UTC().Format(time.RFC3339))
	addKeyValue(summary, "Completed", h.CompletedDate.UTC().Format(time.RFC3339))
	addKeyInt(summary, "Products", h.TotalProducts)
	addKeyInt(summary, "Counted", h.CountedProducts)
	addKeyInt(summary, "Out of stock", h.OutOfStockCount)
	addKeyInt(summary, "Low stock", h.LowStockCount)

	addHeaderRow(summary, []string{"Category", "Stock"})
	for _, c := range domain.Categories() {
		row := summary.AddRow()
		row.AddCell().SetString(string(c))
		row.AddCell().SetFloat(totals[c].Round(1).InexactFloat64())
	}
	summary.SetColWidth(1, 2, 20)

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write count sheet: %w", err)
	}
	return buffer.Bytes(), nil
}

// CountSheetKey is the object key of a session's count sheet
func CountSheetKey(prefix string, h *domain.SessionHistory) string {
	name := fmt.Sprintf("%s/%s.xlsx", h.CompletedDate.UTC().Format("2006/01/02"), h.ID)
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func addHeaderRow(sheet *xlsx.Sheet, headers []string) {
	row := sheet.AddRow()
	for _, header := range headers {
		cell := row.AddCell()
		cell.SetString(header)
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}
}

func addKeyValue(sheet *xlsx.Sheet, key, value string) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetString(value)
}

func addKeyInt(sheet *xlsx.Sheet, key string, value int) {
	row := sheet.AddRow()
	row.AddCell().SetString(key)
	row.AddCell().SetInt(value)
}
