// Package render turns the product collection into HTML.
package render

import (
	"embed"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/talkincode/webestoque/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmptyTableText is the single placeholder row of an empty table.
const EmptyTableText = "Nenhum produto cadastrado."

// Row is one product as displayed in the table.
type Row struct {
	ID           int64
	Name         string
	Image        template.URL
	FilamentType string
	Colors       string
	Weight       string
	Dimensions   string
	Price        string
	Quantity     int
	Available    bool
}

// ModalView is the open in-page dialog.
type ModalView struct {
	Kind      string // "delete", "buy" or "restock"
	ProductID int64
	Name      string
	Image     template.URL
	Price     string
	Stock     int
	Quantity  string
	Derived   string
	Hint      Hint
}

// PageData is everything the inventory page shows.
type PageData struct {
	Title string
	Flash Hint
	Form  *Form
	Rows  []Row
	Modal *ModalView
}

// Binder renders products with a fixed currency formatter.
type Binder struct {
	tmpl  *template.Template
	Money *Money
}

func NewBinder(money *Money) (*Binder, error) {
	tmpl, err := template.New("webestoque").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Binder{tmpl: tmpl, Money: money}, nil
}

// ImageURL accepts only image data URLs so stored values cannot inject
// other schemes into src attributes.
func ImageURL(dataURL string) template.URL {
	if strings.HasPrefix(dataURL, "data:image/") && !strings.ContainsAny(dataURL, "\"'<> ") {
		return template.URL(dataURL)
	}
	return ""
}

// FormatWeight renders grams without trailing zeros.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + " g"
}

func (b *Binder) Row(p domain.Product) Row {
	return Row{
		ID:           p.ID,
		Name:         p.Name,
		Image:        ImageURL(p.ImageDataURL),
		FilamentType: p.FilamentType,
		Colors:       p.Colors,
		Weight:       FormatWeight(p.Weight),
		Dimensions:   p.Dimensions,
		Price:        b.Money.Format(p.Price),
		Quantity:     p.Quantity,
		Available:    p.Available(),
	}
}

func (b *Binder) Rows(products []domain.Product) []Row {
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, b.Row(p))
	}
	return rows
}

// Table writes the table body only.
func (b *Binder) Table(w io.Writer, products []domain.Product) error {
	return b.tmpl.ExecuteTemplate(w, "tbody", b.Rows(products))
}

func (b *Binder) Page(w io.Writer, data PageData) error {
	if data.Form == nil {
		data.Form = NewForm()
	}
	if data.Title == "" {
		data.Title = "Web Estoque"
	}
	return b.tmpl.ExecuteTemplate(w, "page", data)
}
