package wizard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/logging"
	"github.com/keystay/keystay/internal/notification"
	"github.com/keystay/keystay/internal/wizard/rules"
)

type fakeAction struct {
	calls   atomic.Int64
	err     error
	release chan struct{} // when set, Execute blocks until closed
}

func (a *fakeAction) Execute(ctx context.Context, form Form) (Receipt, error) {
	a.calls.Add(1)
	if a.release != nil {
		select {
		case <-a.release:
		case <-ctx.Done():
			return Receipt{}, ctx.Err()
		}
	}
	if a.err != nil {
		return Receipt{}, a.err
	}
	return Receipt{RecordID: "rec-1", Record: "booking"}, nil
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (n *fakeNotifier) Send(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *fakeNotifier) byKind(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, m := range n.sent {
		if m.Kind == kind {
			count++
		}
	}
	return count
}

func newTestService(action Action, notifier notification.Notifier) *Service {
	def := Definition{
		Kind:  "booking",
		Title: "Book this home",
		Steps: []Step{
			{ID: "details", Label: "Details", Order: 0, Validate: rules.Required("full_name")},
			{ID: "review", Label: "Review", Order: 1, Validate: rules.Required("full_name")},
		},
		Action: action,
	}
	return NewService([]Definition{def}, NewMemoryStore(), notifier, logging.Discard(), time.Hour, 5*time.Second)
}

func readySession(t *testing.T, svc *Service) State {
	t.Helper()
	ctx := context.Background()
	st, err := svc.Start(ctx, "booking", "user-1", Form{"full_name": "Asha Rao"})
	require.NoError(t, err)
	st, err = svc.Advance(ctx, st.SessionID, "user-1")
	require.NoError(t, err)
	require.Equal(t, "review", st.CurrentStepID)
	return st
}

func TestSubmitHappyPath(t *testing.T) {
	action := &fakeAction{}
	notifier := &fakeNotifier{}
	svc := newTestService(action, notifier)
	st := readySession(t, svc)

	receipt, st, err := svc.Submit(context.Background(), st.SessionID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", receipt.RecordID)
	assert.Equal(t, PhaseComplete, st.Phase)
	assert.Equal(t, int64(1), action.calls.Load())
	assert.Equal(t, 1, notifier.byKind(notification.KindWizardComplete))
}

func TestSubmitRejectedBeforeFinalStep(t *testing.T) {
	action := &fakeAction{}
	svc := newTestService(action, &fakeNotifier{})

	st, err := svc.Start(context.Background(), "booking", "user-1", nil)
	require.NoError(t, err)

	_, _, err = svc.Submit(context.Background(), st.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Zero(t, action.calls.Load())
}

func TestDoubleSubmitInvokesActionOnce(t *testing.T) {
	action := &fakeAction{release: make(chan struct{})}
	notifier := &fakeNotifier{}
	svc := newTestService(action, notifier)
	st := readySession(t, svc)

	firstDone := make(chan error, 1)
	go func() {
		_, _, err := svc.Submit(context.Background(), st.SessionID, "user-1")
		firstDone <- err
	}()

	// Wait for the first submit to hold the reservation.
	require.Eventually(t, func() bool {
		return action.calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	_, _, err := svc.Submit(context.Background(), st.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(action.release)
	require.NoError(t, <-firstDone)

	assert.Equal(t, int64(1), action.calls.Load())
	assert.Equal(t, 1, notifier.byKind(notification.KindWizardComplete))
}

func TestFailedSubmitPreservesFormAndAllowsRetry(t *testing.T) {
	action := &fakeAction{err: errors.New("connection reset")}
	notifier := &fakeNotifier{}
	svc := newTestService(action, notifier)
	st := readySession(t, svc)

	_, failed, err := svc.Submit(context.Background(), st.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.Equal(t, PhaseFailed, failed.Phase)
	assert.Equal(t, "Asha Rao", failed.Form["full_name"], "form must survive a failed submit")
	assert.Equal(t, 0, notifier.byKind(notification.KindWizardComplete))
	assert.Equal(t, 1, notifier.byKind(notification.KindSubmitFailed))

	// Retry succeeds once the action recovers.
	action.err = nil
	receipt, done, err := svc.Submit(context.Background(), st.SessionID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", receipt.RecordID)
	assert.Equal(t, PhaseComplete, done.Phase)
	assert.Equal(t, 1, notifier.byKind(notification.KindWizardComplete))
}

func TestSubmitAfterCompleteRejected(t *testing.T) {
	action := &fakeAction{}
	svc := newTestService(action, &fakeNotifier{})
	st := readySession(t, svc)

	_, _, err := svc.Submit(context.Background(), st.SessionID, "user-1")
	require.NoError(t, err)

	_, _, err = svc.Submit(context.Background(), st.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrAlreadyComplete)
	assert.Equal(t, int64(1), action.calls.Load())
}

func TestCancelDiscardsSession(t *testing.T) {
	svc := newTestService(&fakeAction{}, &fakeNotifier{})
	st := readySession(t, svc)

	require.NoError(t, svc.Cancel(context.Background(), st.SessionID, "user-1"))
	_, _, err := svc.Get(context.Background(), st.SessionID, "user-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionOwnershipEnforced(t *testing.T) {
	svc := newTestService(&fakeAction{}, &fakeNotifier{})
	st := readySession(t, svc)

	_, _, err := svc.Get(context.Background(), st.SessionID, "someone-else")
	assert.ErrorIs(t, err, ErrNotOwner)
}
