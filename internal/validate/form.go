// Package validate turns raw product form input into domain fields.
package validate

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/talkincode/webestoque/internal/domain"
)

// ErrInvalid matches every validation failure with errors.Is.
var ErrInvalid = errors.New("invalid product form")

// Error describes a single validation failure. Field names the offending
// numeric field; Missing lists the labels of empty required text fields.
type Error struct {
	Field   string
	Missing []string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool { return target == ErrInvalid }

// RawForm holds the submitted form values as typed by the user.
type RawForm struct {
	Name         string `form:"name"`
	FilamentType string `form:"filamentType"`
	Colors       string `form:"colors"`
	Weight       string `form:"weight"`
	Dimensions   string `form:"dimensions"`
	Price        string `form:"price"`
	Quantity     string `form:"quantity"`
	Description  string `form:"description"`
}

// FromProduct renders stored values back into form input.
func FromProduct(p domain.Product) RawForm {
	return RawForm{
		Name:         p.Name,
		FilamentType: p.FilamentType,
		Colors:       p.Colors,
		Weight:       strconv.FormatFloat(p.Weight, 'f', -1, 64),
		Dimensions:   p.Dimensions,
		Price:        strconv.FormatFloat(p.Price, 'f', -1, 64),
		Quantity:     strconv.Itoa(p.Quantity),
		Description:  p.Description,
	}
}

var (
	errWeight   = &Error{Field: "weight", Message: "Peso deve ser um número maior ou igual a zero (g)."}
	errPrice    = &Error{Field: "price", Message: "Preço deve ser um número maior ou igual a zero (R$)."}
	errQuantity = &Error{Field: "quantity", Message: "Quantidade deve ser um inteiro maior ou igual a zero."}
)

// Validate checks weight, price and quantity in that order, then reports
// every missing required text field at once.
func Validate(raw RawForm) (domain.Fields, error) {
	weight, err := ParseDecimal(raw.Weight)
	if err != nil || weight < 0 {
		return domain.Fields{}, errWeight
	}
	price, err := ParseDecimal(raw.Price)
	if err != nil || price < 0 {
		return domain.Fields{}, errPrice
	}
	quantity, err := ParseQuantity(raw.Quantity)
	if err != nil {
		return domain.Fields{}, errQuantity
	}

	fields := domain.Fields{
		Name:         strings.TrimSpace(raw.Name),
		FilamentType: strings.TrimSpace(raw.FilamentType),
		Colors:       strings.TrimSpace(raw.Colors),
		Weight:       Round2(weight),
		Dimensions:   strings.TrimSpace(raw.Dimensions),
		Price:        Round2(price),
		Quantity:     quantity,
		Description:  strings.TrimSpace(raw.Description),
	}

	var missing []string
	for _, f := range []struct{ label, value string }{
		{"Nome", fields.Name},
		{"Tipo de filamento", fields.FilamentType},
		{"Cores", fields.Colors},
		{"Dimensões", fields.Dimensions},
		{"Descrição", fields.Description},
	} {
		if f.value == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return domain.Fields{}, &Error{
			Missing: missing,
			Message: "Campos obrigatórios: " + strings.Join(missing, ", ") + ".",
		}
	}
	return fields, nil
}

// ParseDecimal accepts "." or "," as decimal separator. Thousands
// separators are not supported.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}

// ParseQuantity parses a non-negative integer.
func ParseQuantity(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}

// Round2 rounds half away from zero to two fractional digits. Values too
// large to carry cents are returned as is, so finite input stays finite.
func Round2(v float64) float64 {
	if math.Abs(v) >= 1<<52 {
		return v
	}
	return math.Round(v*100) / 100
}
