package wizard

import "context"

// Receipt is the uniform result of a terminal action: the identifier of the
// record it created and which kind of record that was.
type Receipt struct {
	RecordID string `json:"record_id"`
	Record   string `json:"record"`
}

// Action is the side-effecting operation executed once on final-step
// submission, typically a single record creation. Implementations map the
// accumulated form onto their external schema and must not leak raw driver
// errors.
type Action interface {
	Execute(ctx context.Context, form Form) (Receipt, error)
}

// Definition is the immutable configuration of one wizard flow: its ordered
// step table and the terminal action submit hands the form to.
type Definition struct {
	Kind   string
	Title  string
	Steps  []Step
	Action Action
}

// stepIndex returns the position of a step id, or -1.
func (d Definition) stepIndex(id string) int {
	for i, s := range d.Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// lastStep reports whether the id names the final step.
func (d Definition) lastStep(id string) bool {
	n := len(d.Steps)
	return n > 0 && d.Steps[n-1].ID == id
}
