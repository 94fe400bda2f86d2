package wizard

import "github.com/keystay/keystay/internal/wizard/rules"

// Step is one named position in a wizard's ordered sequence. The step table
// is immutable once a session starts.
type Step struct {
	ID       string
	Label    string
	Order    int
	Validate rules.Rule
}

// validate runs the step's gate against the form. Steps without a rule never
// block.
func (s Step) validate(form Form) rules.Outcome {
	if s.Validate == nil {
		return rules.Outcome{Valid: true}
	}
	return s.Validate(form)
}
