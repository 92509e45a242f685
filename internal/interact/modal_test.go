package interact

import (
	"context"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkincode/webestoque/internal/inventory"
	"github.com/talkincode/webestoque/internal/render"
)

func startModal(t *testing.T, qty int, kind Kind) (*Modal, *inventory.Service) {
	t.Helper()
	inv := newInventory(t, qty)
	m := NewModal(render.MustMoney("pt-BR", "BRL"))
	actions := NewActions(inv, m)
	err := m.Start(context.Background(), func(ctx context.Context) (Outcome, error) {
		return actions.Run(ctx, kind, 1)
	})
	require.NoError(t, err)
	return m, inv
}

func TestModal_BuyShowsContextAndDerivedTotal(t *testing.T) {
	m, _ := startModal(t, 10, KindBuy)

	view := m.View()
	require.NotNil(t, view)
	assert.Equal(t, "buy", view.Kind)
	assert.Equal(t, "PLA Red", view.Name)
	assert.Equal(t, 10, view.Stock)
	assert.Equal(t, "1", view.Quantity)
	assert.Equal(t, m.money.Format(49.9), view.Derived)

	assert.Equal(t, m.money.Format(149.7), m.Derived("3"))
	assert.Empty(t, m.Derived("0"))
	assert.Empty(t, m.Derived("x"))
	m.Dismiss()
}

func TestModal_RestockDerivedStock(t *testing.T) {
	m, _ := startModal(t, 4, KindRestock)
	assert.Equal(t, "5", m.View().Derived)
	assert.Equal(t, "10", m.Derived("6"))
	assert.Empty(t, m.Derived(strconv.Itoa(math.MaxInt)))
	m.Dismiss()
}

func TestModal_FailureKeepsDialogOpen(t *testing.T) {
	m, inv := startModal(t, 10, KindBuy)

	require.NoError(t, m.Submit(context.Background(), "15"))
	view := m.View()
	require.NotNil(t, view)
	assert.Equal(t, render.ErrorHint("Quantidade em estoque insuficiente."), view.Hint)
	assert.Equal(t, "15", view.Quantity)
	assert.Empty(t, m.TakeFlash().Text)

	require.NoError(t, m.Submit(context.Background(), "10"))
	assert.Nil(t, m.View())
	assert.Equal(t, render.SuccessHint("Compra realizada com sucesso! 10 unidade(s) removida(s) do estoque."), m.TakeFlash())
	assert.Empty(t, m.TakeFlash().Text)

	p, _ := inv.Get(1)
	assert.Equal(t, 0, p.Quantity)
	assert.ErrorIs(t, m.Submit(context.Background(), "1"), ErrNoDialog)
}

func TestModal_DismissClearsAndAppliesNothing(t *testing.T) {
	m, inv := startModal(t, 10, KindDelete)
	require.NoError(t, m.Submit(context.Background(), "")) // delete succeeds
	assert.Nil(t, m.View())
	assert.Empty(t, inv.List())

	m, inv = startModal(t, 10, KindBuy)
	require.NoError(t, m.Submit(context.Background(), "abc"))
	require.NotEmpty(t, m.View().Hint.Text)
	m.Dismiss()
	assert.Nil(t, m.View())
	p, _ := inv.Get(1)
	assert.Equal(t, 10, p.Quantity)
	assert.Empty(t, m.TakeFlash().Text)
}

func TestModal_StartReplacesOpenDialog(t *testing.T) {
	inv := newInventory(t, 10)
	m := NewModal(render.MustMoney("pt-BR", "BRL"))
	actions := NewActions(inv, m)

	run := func(kind Kind, id int64) error {
		return m.Start(context.Background(), func(ctx context.Context) (Outcome, error) {
			return actions.Run(ctx, kind, id)
		})
	}
	require.NoError(t, run(KindBuy, 1))
	require.NoError(t, run(KindRestock, 1))
	assert.Equal(t, "restock", m.View().Kind)

	assert.ErrorIs(t, run(KindBuy, 42), inventory.ErrNotFound)
	assert.Nil(t, m.View())
}

func TestModal_ContextCancelClosesDialog(t *testing.T) {
	inv := newInventory(t, 10)
	m := NewModal(render.MustMoney("pt-BR", "BRL"))
	actions := NewActions(inv, m)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, m.Start(ctx, func(ctx context.Context) (Outcome, error) {
		return actions.Buy(ctx, 1)
	}))
	cancel()
	assert.Eventually(t, func() bool { return m.View() == nil }, time.Second, 10*time.Millisecond)
}
