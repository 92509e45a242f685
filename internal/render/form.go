package render

import (
	"github.com/talkincode/webestoque/internal/domain"
	"github.com/talkincode/webestoque/internal/validate"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Hint is the message shown next to the form or inside a dialog.
type Hint struct {
	Kind string // "error" or "success"
	Text string
}

func ErrorHint(text string) Hint   { return Hint{Kind: "error", Text: text} }
func SuccessHint(text string) Hint { return Hint{Kind: "success", Text: text} }

// Form is the create/update form. It is either creating a new product or
// editing the product named by ID.
type Form struct {
	Mode   Mode
	ID     int64
	Values validate.RawForm
	Hint   Hint
}

func NewForm() *Form {
	return &Form{Mode: ModeCreate}
}

// Edit loads p into the form and switches to update mode.
func (f *Form) Edit(p domain.Product) {
	f.Mode = ModeEdit
	f.ID = p.ID
	f.Values = validate.FromProduct(p)
	f.Hint = Hint{}
}

// Reset returns to create mode with every field and message cleared.
func (f *Form) Reset() {
	*f = Form{Mode: ModeCreate}
}

// Submitted resets the form after a successful save and keeps the message.
func (f *Form) Submitted(message string) {
	f.Reset()
	f.Hint = SuccessHint(message)
}

// Rejected keeps the submitted values on screen with the error.
func (f *Form) Rejected(id int64, values validate.RawForm, err error) {
	f.Mode = ModeCreate
	if id != 0 {
		f.Mode = ModeEdit
	}
	f.ID = id
	f.Values = values
	f.Hint = ErrorHint(err.Error())
}

func (f *Form) Editing() bool { return f.Mode == ModeEdit }

func (f *Form) Title() string {
	if f.Editing() {
		return "Editar Produto"
	}
	return "Cadastrar Produto"
}

func (f *Form) SubmitLabel() string {
	if f.Editing() {
		return "Atualizar produto"
	}
	return "Salvar produto"
}
