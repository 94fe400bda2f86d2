package wizard

import "time"

// Form is the accumulated field data for one wizard session. Values stay as
// the client submitted them; terminal adapters normalize on the way out.
type Form map[string]string

// Phase tracks where a session sits in its lifecycle. Complete is terminal;
// failed is not, it allows a retry without re-entering data.
type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
	PhaseComplete   Phase = "complete"
	PhaseFailed     Phase = "failed"
)

// State is the mutable half of a wizard session, owned by exactly one
// session and mutated only through engine transitions.
type State struct {
	SessionID     string    `json:"session_id"`
	Kind          string    `json:"kind"`
	OwnerID       string    `json:"owner_id"`
	CurrentStepID string    `json:"current_step_id"`
	Form          Form      `json:"form"`
	Phase         Phase     `json:"phase"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// editable reports whether field edits and navigation are allowed.
func (s State) editable() bool {
	return s.Phase == PhaseEditing || s.Phase == PhaseFailed
}

func (s State) cloneForm() Form {
	out := make(Form, len(s.Form))
	for k, v := range s.Form {
		out[k] = v
	}
	return out
}
