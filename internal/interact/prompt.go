package interact

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/talkincode/webestoque/internal/render"
)

// Prompt asks on a terminal and blocks on each answer. A failed action is
// reported once and not retried.
type Prompt struct {
	in    *bufio.Reader
	out   io.Writer
	money *render.Money
}

func NewPrompt(in io.Reader, out io.Writer, money *render.Money) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, money: money}
}

func (p *Prompt) Ask(ctx context.Context, q Question) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	switch q.Kind {
	case KindDelete:
		fmt.Fprintf(p.out, "Excluir %q? [s/N]: ", q.Product.Name)
	case KindBuy:
		fmt.Fprintf(p.out, "%s (%s, estoque %d)\nQuantidade para comprar [%s]: ",
			q.Product.Name, p.money.Format(q.Product.Price), q.Product.Quantity, q.Default)
	case KindRestock:
		fmt.Fprintf(p.out, "%s (estoque %d)\nQuantidade para reabastecer [%s]: ",
			q.Product.Name, q.Product.Quantity, q.Default)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			fmt.Fprintln(p.out)
			return "", false, nil
		}
		return "", false, err
	}
	line = strings.TrimSpace(line)

	if q.Kind == KindDelete {
		switch strings.ToLower(line) {
		case "s", "sim", "y", "yes":
			return line, true, nil
		}
		return "", false, nil
	}
	if line == "" {
		line = q.Default
	}
	return line, true, nil
}

func (p *Prompt) Reject(_ context.Context, _ Question, err error) bool {
	fmt.Fprintln(p.out, err.Error())
	return false
}

func (p *Prompt) Done(_ context.Context, _ Question, message string) {
	fmt.Fprintln(p.out, message)
}
