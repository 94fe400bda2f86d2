package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keystay/keystay/internal/notification"
	"github.com/keystay/keystay/internal/wizard/rules"
)

var (
	// ErrUnknownKind indicates no wizard definition is registered for the kind.
	ErrUnknownKind = errors.New("unknown wizard kind")

	// ErrNotOwner indicates the caller does not own the session.
	ErrNotOwner = errors.New("not owner of session")

	// ErrNotReady indicates submit was attempted before the final step's
	// gate passed.
	ErrNotReady = errors.New("final step incomplete")

	// ErrAlreadyComplete indicates the session already finished its flow.
	ErrAlreadyComplete = errors.New("wizard already complete")

	// ErrSubmitFailed is the uniform error for terminal-action failures.
	// The form is preserved so the user may retry without re-entering data.
	ErrSubmitFailed = errors.New("submission failed, please retry")
)

// Service drives wizard sessions: it persists engine transitions and runs
// terminal actions with the duplicate-submit guard.
type Service struct {
	defs          map[string]Definition
	store         Store
	notifier      notification.Notifier
	logger        *slog.Logger
	sessionTTL    time.Duration
	submitTimeout time.Duration
}

// NewService registers the wizard definitions against a session store.
func NewService(defs []Definition, store Store, notifier notification.Notifier, logger *slog.Logger, sessionTTL, submitTimeout time.Duration) *Service {
	byKind := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byKind[d.Kind] = d
	}
	return &Service{
		defs:          byKind,
		store:         store,
		notifier:      notifier,
		logger:        logger,
		sessionTTL:    sessionTTL,
		submitTimeout: submitTimeout,
	}
}

// Definitions lists the registered flows.
func (s *Service) Definitions() []Definition {
	out := make([]Definition, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, d)
	}
	return out
}

// Definition returns the registered flow for a kind.
func (s *Service) Definition(kind string) (Definition, error) {
	def, ok := s.defs[kind]
	if !ok {
		return Definition{}, ErrUnknownKind
	}
	return def, nil
}

// Start opens a session for the caller, seeding the form from known profile
// fields.
func (s *Service) Start(ctx context.Context, kind, ownerID string, initial Form) (State, error) {
	def, ok := s.defs[kind]
	if !ok {
		return State{}, ErrUnknownKind
	}
	st := Init(def, ownerID, initial)
	if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
		return State{}, err
	}
	return st, nil
}

// Get loads a session owned by the caller.
func (s *Service) Get(ctx context.Context, sessionID, ownerID string) (State, Definition, error) {
	st, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return State{}, Definition{}, err
	}
	if st.OwnerID != ownerID {
		return State{}, Definition{}, ErrNotOwner
	}
	def, ok := s.defs[st.Kind]
	if !ok {
		return State{}, Definition{}, ErrUnknownKind
	}
	return st, def, nil
}

// SetFields merges the provided fields into the session form.
func (s *Service) SetFields(ctx context.Context, sessionID, ownerID string, fields map[string]string) (State, error) {
	st, _, err := s.Get(ctx, sessionID, ownerID)
	if err != nil {
		return State{}, err
	}
	for field, value := range fields {
		st = SetField(st, field, value)
	}
	if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
		return State{}, err
	}
	return st, nil
}

// Advance applies the forward transition and persists the result.
func (s *Service) Advance(ctx context.Context, sessionID, ownerID string) (State, error) {
	return s.transition(ctx, sessionID, ownerID, Advance)
}

// Retreat applies the backward transition and persists the result.
func (s *Service) Retreat(ctx context.Context, sessionID, ownerID string) (State, error) {
	return s.transition(ctx, sessionID, ownerID, Retreat)
}

// JumpTo moves to a previously visited step and persists the result.
func (s *Service) JumpTo(ctx context.Context, sessionID, ownerID, targetStepID string) (State, error) {
	return s.transition(ctx, sessionID, ownerID, func(def Definition, st State) State {
		return JumpTo(def, st, targetStepID)
	})
}

func (s *Service) transition(ctx context.Context, sessionID, ownerID string, apply func(Definition, State) State) (State, error) {
	st, def, err := s.Get(ctx, sessionID, ownerID)
	if err != nil {
		return State{}, err
	}
	st = apply(def, st)
	if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
		return State{}, err
	}
	return st, nil
}

// Submit runs the terminal action exactly once. The reservation in the store
// rejects a second submit while the first is still pending. On failure the
// form is preserved and the session returns to a retryable state; on success
// the session is complete and the completion notification fires once.
func (s *Service) Submit(ctx context.Context, sessionID, ownerID string) (Receipt, State, error) {
	st, def, err := s.Get(ctx, sessionID, ownerID)
	if err != nil {
		return Receipt{}, State{}, err
	}
	if st.Phase == PhaseComplete {
		return Receipt{}, st, ErrAlreadyComplete
	}
	if !def.lastStep(st.CurrentStepID) {
		return Receipt{}, st, ErrNotReady
	}
	if out := CanAdvance(def, st); !out.Valid {
		return Receipt{}, st, fmt.Errorf("%w: %s", ErrNotReady, out.Message)
	}

	acquired, err := s.store.BeginSubmit(ctx, sessionID, s.submitTimeout)
	if err != nil {
		return Receipt{}, st, err
	}
	if !acquired {
		return Receipt{}, st, ErrSubmitInFlight
	}
	defer func() {
		if err := s.store.EndSubmit(context.WithoutCancel(ctx), sessionID); err != nil {
			s.logger.Warn("release submit reservation", "session_id", sessionID, "error", err)
		}
	}()

	st.Phase = PhaseSubmitting
	st.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
		return Receipt{}, st, err
	}

	// The source leaves a hung terminal action in submitting forever; the
	// timeout here is an enhancement beyond that behavior.
	actionCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	defer cancel()

	receipt, actionErr := def.Action.Execute(actionCtx, st.cloneForm())
	if actionErr != nil {
		st.Phase = PhaseFailed
		st.UpdatedAt = time.Now().UTC()
		if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
			s.logger.Error("persist failed submit state", "session_id", sessionID, "error", err)
		}
		s.logger.Error("terminal action failed", "session_id", sessionID, "kind", st.Kind, "error", actionErr)
		_ = s.notify(ctx, notification.Message{
			Kind:        notification.KindSubmitFailed,
			Destination: ownerID,
			Body:        fmt.Sprintf("Your %s submission failed, please retry", st.Kind),
		})
		return Receipt{}, st, ErrSubmitFailed
	}

	st.Phase = PhaseComplete
	st.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, st, s.sessionTTL); err != nil {
		s.logger.Error("persist completed state", "session_id", sessionID, "error", err)
	}

	_ = s.notify(ctx, notification.Message{
		Kind:        notification.KindWizardComplete,
		Destination: ownerID,
		Body:        fmt.Sprintf("%s created: %s", receipt.Record, receipt.RecordID),
	})

	return receipt, st, nil
}

// Cancel discards the session with no side effects.
func (s *Service) Cancel(ctx context.Context, sessionID, ownerID string) error {
	if _, _, err := s.Get(ctx, sessionID, ownerID); err != nil {
		return err
	}
	return s.store.Delete(ctx, sessionID)
}

// Progress summarizes the session's step table for display: each step's
// label, position and whether its gate currently passes.
func (s *Service) Progress(def Definition, st State) []StepStatus {
	out := make([]StepStatus, len(def.Steps))
	cur := def.stepIndex(st.CurrentStepID)
	for i, step := range def.Steps {
		out[i] = StepStatus{
			ID:      step.ID,
			Label:   step.Label,
			Order:   step.Order,
			Current: i == cur,
			Visited: i <= cur,
			Gate:    step.validate(st.Form),
		}
	}
	return out
}

// StepStatus is the per-step view model returned alongside session state.
type StepStatus struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Order   int           `json:"order"`
	Current bool          `json:"current"`
	Visited bool          `json:"visited"`
	Gate    rules.Outcome `json:"gate"`
}

func (s *Service) notify(ctx context.Context, msg notification.Message) error {
	if s.notifier == nil {
		return nil
	}
	return s.notifier.Send(ctx, msg)
}
