package wizard

import (
	"time"

	"github.com/google/uuid"

	"github.com/keystay/keystay/internal/wizard/rules"
)

// Engine transitions are pure: each returns a new State and never performs
// I/O. Persistence and the terminal action live in Service.

// Init opens a session at the first step, seeding the form with any known
// profile fields.
func Init(def Definition, ownerID string, initial Form) State {
	now := time.Now().UTC()
	form := make(Form, len(initial))
	for k, v := range initial {
		form[k] = v
	}
	return State{
		SessionID:     uuid.New().String(),
		Kind:          def.Kind,
		OwnerID:       ownerID,
		CurrentStepID: def.Steps[0].ID,
		Form:          form,
		Phase:         PhaseEditing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// SetField merges one field into the form. It never advances the step and
// never validates.
func SetField(st State, field, value string) State {
	if !st.editable() {
		return st
	}
	form := st.cloneForm()
	form[field] = value
	st.Form = form
	st.UpdatedAt = time.Now().UTC()
	return st
}

// CanAdvance evaluates the current step's gate against the live form. The
// outcome is recomputed on every call; it is never cached.
func CanAdvance(def Definition, st State) rules.Outcome {
	idx := def.stepIndex(st.CurrentStepID)
	if idx < 0 {
		return rules.Outcome{Valid: false, Message: "unknown step"}
	}
	return def.Steps[idx].validate(st.Form)
}

// Advance moves exactly one step forward. It is a silent no-op when the gate
// fails or the session already sits at the last step.
func Advance(def Definition, st State) State {
	if !st.editable() {
		return st
	}
	idx := def.stepIndex(st.CurrentStepID)
	if idx < 0 || idx >= len(def.Steps)-1 {
		return st
	}
	if !def.Steps[idx].validate(st.Form).Valid {
		return st
	}
	st.CurrentStepID = def.Steps[idx+1].ID
	st.Phase = PhaseEditing
	st.UpdatedAt = time.Now().UTC()
	return st
}

// Retreat moves exactly one step backward. It never validates: the user is
// abandoning forward progress, not confirming it. No-op at the first step.
func Retreat(def Definition, st State) State {
	if !st.editable() {
		return st
	}
	idx := def.stepIndex(st.CurrentStepID)
	if idx <= 0 {
		return st
	}
	st.CurrentStepID = def.Steps[idx-1].ID
	st.Phase = PhaseEditing
	st.UpdatedAt = time.Now().UTC()
	return st
}

// JumpTo moves to a previously visited step. Forward jumps past unvalidated
// steps are rejected silently.
func JumpTo(def Definition, st State, targetStepID string) State {
	if !st.editable() {
		return st
	}
	cur := def.stepIndex(st.CurrentStepID)
	target := def.stepIndex(targetStepID)
	if target < 0 || target > cur {
		return st
	}
	st.CurrentStepID = targetStepID
	st.Phase = PhaseEditing
	st.UpdatedAt = time.Now().UTC()
	return st
}
