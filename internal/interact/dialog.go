// Package interact collects confirmation and quantity input for the row
// actions and applies the answers to the inventory.
package interact

import (
	"context"

	"github.com/talkincode/webestoque/internal/domain"
)

type Kind string

const (
	KindDelete  Kind = "delete"
	KindBuy     Kind = "buy"
	KindRestock Kind = "restock"
)

// Question is what a dialog asks about a product.
type Question struct {
	Kind    Kind
	Product domain.Product
	Default string // prefilled quantity, empty for delete
}

// Dialog is the input capability behind the row actions. A delete is
// confirmed when Ask returns ok; buy and restock read the quantity from
// the answer.
type Dialog interface {
	// Ask blocks until the user answers. ok is false when the user cancels.
	Ask(ctx context.Context, q Question) (answer string, ok bool, err error)
	// Reject shows why the last answer failed. It reports whether the
	// dialog stays open for another answer.
	Reject(ctx context.Context, q Question, err error) bool
	// Done closes the dialog after the action succeeded.
	Done(ctx context.Context, q Question, message string)
}
