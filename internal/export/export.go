// Package export writes the product list as CSV or XLSX.
package export

import (
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/talkincode/webestoque/internal/domain"
)

const sheet = "Sheet1"

// Record is one exported row. Images are left out.
type Record struct {
	ID           int64   `csv:"id"`
	Name         string  `csv:"name"`
	FilamentType string  `csv:"filamentType"`
	Colors       string  `csv:"colors"`
	Weight       float64 `csv:"weight"`
	Dimensions   string  `csv:"dimensions"`
	Price        float64 `csv:"price"`
	Quantity     int     `csv:"quantity"`
	Description  string  `csv:"description"`
	Available    bool    `csv:"available"`
}

var Header = []string{
	"id", "name", "filamentType", "colors", "weight",
	"dimensions", "price", "quantity", "description", "available",
}

func Records(products []domain.Product) []*Record {
	out := make([]*Record, 0, len(products))
	for _, p := range products {
		out = append(out, &Record{
			ID:           p.ID,
			Name:         p.Name,
			FilamentType: p.FilamentType,
			Colors:       p.Colors,
			Weight:       p.Weight,
			Dimensions:   p.Dimensions,
			Price:        p.Price,
			Quantity:     p.Quantity,
			Description:  p.Description,
			Available:    p.Available(),
		})
	}
	return out
}

func WriteCSV(w io.Writer, products []domain.Product) error {
	return errors.Wrap(gocsv.Marshal(Records(products), w), "write csv")
}

func WriteXLSX(w io.Writer, products []domain.Product) error {
	f := excelize.NewFile()
	for i, h := range Header {
		f.SetCellValue(sheet, cell(i, 1), h)
	}
	for r, rec := range Records(products) {
		row := r + 2
		values := []interface{}{
			rec.ID, rec.Name, rec.FilamentType, rec.Colors, rec.Weight,
			rec.Dimensions, rec.Price, rec.Quantity, rec.Description, rec.Available,
		}
		for i, v := range values {
			f.SetCellValue(sheet, cell(i, row), v)
		}
	}
	return errors.Wrap(f.Write(w), "write xlsx")
}

func cell(col, row int) string {
	return excelize.ToAlphaString(col) + strconv.Itoa(row)
}
