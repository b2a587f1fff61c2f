package services

// DeletePrompt is the question asked before a record is deleted.
const DeletePrompt = "Are you sure you want to delete this URL?"

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

// Confirm calls f(prompt).
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Confirmed is a Confirmer whose answer was given ahead of time, e.g. by a
// confirm=yes form field or a --yes flag.
type Confirmed bool

// Confirm returns the stored answer.
func (c Confirmed) Confirm(string) bool {
	return bool(c)
}
