package render

import (
	"github.com/pkg/errors"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money formats amounts in one currency for one locale.
type Money struct {
	printer *message.Printer
	unit    currency.Unit
}

func NewMoney(locale, code string) (*Money, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, errors.Wrapf(err, "locale %q", locale)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, errors.Wrapf(err, "currency %q", code)
	}
	return &Money{printer: message.NewPrinter(tag), unit: unit}, nil
}

// MustMoney is NewMoney for values known to be valid.
func MustMoney(locale, code string) *Money {
	m, err := NewMoney(locale, code)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Money) Format(v float64) string {
	return m.printer.Sprint(currency.Symbol(m.unit.Amount(v)))
}
