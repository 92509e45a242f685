package interact

import (
	"context"
	"fmt"

	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/validate"
	"go.uber.org/zap"
)

// Inventory is the part of the inventory service the actions use.
type Inventory interface {
	Get(id int64) (domain.Product, error)
	Delete(id int64) error
	Purchase(id int64, qty int) (domain.Product, error)
	Restock(id int64, qty int) (domain.Product, error)
}

// Outcome reports a finished action. A cancelled action has no message and
// Changed is false.
type Outcome struct {
	Message string
	Changed bool
}

// quantityError is a malformed quantity answer.
type quantityError struct{ msg string }

func (e *quantityError) Error() string { return e.msg }
func (e *quantityError) Unwrap() error { return inventory.ErrInvalidQuantity }

// Actions runs delete, buy and restock through a Dialog.
type Actions struct {
	inv    Inventory
	dialog Dialog
}

func NewActions(inv Inventory, dialog Dialog) *Actions {
	return &Actions{inv: inv, dialog: dialog}
}

func (a *Actions) Delete(ctx context.Context, id int64) (Outcome, error) {
	return a.run(ctx, KindDelete, id, func(string) (string, error) {
		if err := a.inv.Delete(id); err != nil {
			return "", err
		}
		return "Produto excluído com sucesso.", nil
	})
}

func (a *Actions) Buy(ctx context.Context, id int64) (Outcome, error) {
	return a.run(ctx, KindBuy, id, func(answer string) (string, error) {
		qty, err := parsePositive(answer, "Informe uma quantidade válida para compra.")
		if err != nil {
			return "", err
		}
		if _, err := a.inv.Purchase(id, qty); err != nil {
			return "", err
		}
		return fmt.Sprintf("Compra realizada com sucesso! %d unidade(s) removida(s) do estoque.", qty), nil
	})
}

func (a *Actions) Restock(ctx context.Context, id int64) (Outcome, error) {
	return a.run(ctx, KindRestock, id, func(answer string) (string, error) {
		qty, err := parsePositive(answer, "Informe uma quantidade válida para reabastecimento.")
		if err != nil {
			return "", err
		}
		if _, err := a.inv.Restock(id, qty); err != nil {
			return "", err
		}
		return fmt.Sprintf("Reabastecimento realizado com sucesso! %d unidade(s) adicionada(s) ao estoque.", qty), nil
	})
}

// Run dispatches by kind.
func (a *Actions) Run(ctx context.Context, kind Kind, id int64) (Outcome, error) {
	switch kind {
	case KindDelete:
		return a.Delete(ctx, id)
	case KindBuy:
		return a.Buy(ctx, id)
	case KindRestock:
		return a.Restock(ctx, id)
	}
	return Outcome{}, fmt.Errorf("unknown action %q", kind)
}

func parsePositive(answer, msg string) (int, error) {
	qty, err := validate.ParseQuantity(answer)
	if err != nil || qty <= 0 {
		return 0, &quantityError{msg: msg}
	}
	return qty, nil
}

func (a *Actions) run(ctx context.Context, kind Kind, id int64, apply func(answer string) (string, error)) (Outcome, error) {
	p, err := a.inv.Get(id)
	if err != nil {
		return Outcome{}, err
	}
	q := Question{Kind: kind, Product: p}
	if kind != KindDelete {
		q.Default = "1"
	}
	for {
		answer, ok, err := a.dialog.Ask(ctx, q)
		if err != nil {
			return Outcome{}, err
		}
		if !ok {
			return Outcome{}, nil
		}
		msg, err := apply(answer)
		if err == nil {
			zap.L().Info("product action applied",
				zap.String("action", string(kind)),
				zap.Int64("product_id", id),
				zap.String("answer", answer))
			a.dialog.Done(ctx, q, msg)
			return Outcome{Message: msg, Changed: true}, nil
		}
		if !a.dialog.Reject(ctx, q, err) {
			return Outcome{}, err
		}
		if fresh, gerr := a.inv.Get(id); gerr == nil {
			q.Product = fresh
		}
	}
}
