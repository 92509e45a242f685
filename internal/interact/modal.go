package interact

import (
	"context"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/talkincode/webestoque/internal/render"
	"github.com/talkincode/webestoque/internal/validate"
)

// ErrNoDialog is returned when an answer arrives while no dialog waits.
var ErrNoDialog = errors.New("no dialog is open")

type reply struct {
	answer  string
	ok      bool
	settled chan struct{}
}

type dialog struct {
	q        Question
	quantity string
	hint     render.Hint
	closed   bool
	waiting  bool          // Ask is blocked for an answer
	replies  chan reply    // capacity 1, one send per wait
	settled  chan struct{} // closed once the last answer is processed
}

// Modal is the in-page dialog. The action runs in its own goroutine and
// blocks in Ask while the page shows the dialog; HTTP handlers feed it with
// Submit and Dismiss. One action runs at a time.
type Modal struct {
	money *render.Money

	mu      sync.Mutex
	dlg     *dialog
	flash   render.Hint
	opened  chan struct{}
	running chan struct{}
}

func NewModal(money *render.Money) *Modal {
	return &Modal{money: money}
}

// Start dismisses any open dialog and runs the action. It returns once the
// action's dialog is showing, or with the action's error when it ended
// before asking anything (an unknown product, for example).
func (m *Modal) Start(ctx context.Context, run func(context.Context) (Outcome, error)) error {
	m.Dismiss()

	m.mu.Lock()
	prev := m.running
	m.mu.Unlock()
	if prev != nil {
		<-prev
	}

	d := &dialog{replies: make(chan reply, 1)}
	opened := make(chan struct{})
	running := make(chan struct{})
	m.mu.Lock()
	m.dlg = d
	m.opened = opened
	m.running = running
	m.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		defer close(running)
		_, err := run(ctx)
		done <- err
	}()

	select {
	case <-opened:
		return nil
	case err := <-done:
		m.mu.Lock()
		d.closed = true
		if m.opened == opened {
			m.opened = nil
		}
		m.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Modal) Ask(ctx context.Context, q Question) (string, bool, error) {
	m.mu.Lock()
	d := m.dlg
	if d == nil {
		d = &dialog{replies: make(chan reply, 1)}
		m.dlg = d
	}
	if d.closed {
		m.settle(d)
		m.mu.Unlock()
		return "", false, nil
	}
	if d.q.Kind == "" {
		d.quantity = q.Default
	}
	d.q = q
	d.waiting = true
	// a rejected answer settles once the dialog can take the next one
	m.settle(d)
	if m.opened != nil {
		close(m.opened)
		m.opened = nil
	}
	m.mu.Unlock()

	select {
	case r := <-d.replies:
		m.mu.Lock()
		if !r.ok {
			d.closed = true
			m.mu.Unlock()
			close(r.settled)
			return "", false, nil
		}
		d.quantity = r.answer
		d.settled = r.settled
		m.mu.Unlock()
		return r.answer, true, nil
	case <-ctx.Done():
		m.mu.Lock()
		d.waiting = false
		d.closed = true
		select {
		case r := <-d.replies:
			close(r.settled)
		default:
		}
		m.mu.Unlock()
		return "", false, ctx.Err()
	}
}

func (m *Modal) Reject(_ context.Context, _ Question, err error) bool {
	m.mu.Lock()
	d := m.dlg
	if d == nil {
		m.mu.Unlock()
		return false
	}
	keep := !d.closed
	if keep {
		d.hint = render.ErrorHint(err.Error())
	} else {
		m.settle(d)
	}
	m.mu.Unlock()
	return keep
}

// settle releases the Submit waiting on the last answer. Callers hold mu.
func (m *Modal) settle(d *dialog) {
	if d.settled != nil {
		close(d.settled)
		d.settled = nil
	}
}

func (m *Modal) Done(_ context.Context, _ Question, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d := m.dlg; d != nil {
		d.closed = true
		d.hint = render.Hint{}
		m.settle(d)
	}
	m.flash = render.SuccessHint(message)
}

// Submit answers the open dialog and waits until the action has either
// closed it or shown an inline error.
func (m *Modal) Submit(ctx context.Context, answer string) error {
	m.mu.Lock()
	d := m.dlg
	if d == nil || d.closed || !d.waiting {
		m.mu.Unlock()
		return ErrNoDialog
	}
	d.waiting = false
	settled := make(chan struct{})
	d.replies <- reply{answer: answer, ok: true, settled: settled}
	m.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dismiss closes the open dialog without applying anything and clears its
// inline message.
func (m *Modal) Dismiss() {
	m.mu.Lock()
	d := m.dlg
	if d == nil || d.closed {
		m.mu.Unlock()
		return
	}
	d.hint = render.Hint{}
	if !d.waiting {
		d.closed = true
		m.mu.Unlock()
		return
	}
	d.waiting = false
	settled := make(chan struct{})
	d.replies <- reply{settled: settled}
	m.mu.Unlock()
	<-settled
}

// TakeFlash returns the last success message once.
func (m *Modal) TakeFlash() render.Hint {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := m.flash
	m.flash = render.Hint{}
	return h
}

// View describes the open dialog for rendering, or nil.
func (m *Modal) View() *render.ModalView {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.dlg
	if d == nil || d.closed || d.q.Kind == "" {
		return nil
	}
	p := d.q.Product
	return &render.ModalView{
		Kind:      string(d.q.Kind),
		ProductID: p.ID,
		Name:      p.Name,
		Image:     render.ImageURL(p.ImageDataURL),
		Price:     m.money.Format(p.Price),
		Stock:     p.Quantity,
		Quantity:  d.quantity,
		Derived:   m.derive(d.q, d.quantity),
		Hint:      d.hint,
	}
}

// Derived recomputes the live value of the open dialog for a typed
// quantity: the total price for a purchase, the resulting stock for a
// restock.
func (m *Modal) Derived(raw string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.dlg
	if d == nil || d.closed {
		return ""
	}
	return m.derive(d.q, raw)
}

func (m *Modal) derive(q Question, raw string) string {
	qty, err := validate.ParseQuantity(raw)
	if err != nil || qty <= 0 {
		return ""
	}
	switch q.Kind {
	case KindBuy:
		total := q.Product.Price * float64(qty)
		if math.IsInf(total, 0) {
			return ""
		}
		return m.money.Format(validate.Round2(total))
	case KindRestock:
		if qty > math.MaxInt-q.Product.Quantity {
			return ""
		}
		return strconv.Itoa(q.Product.Quantity + qty)
	}
	return ""
}
