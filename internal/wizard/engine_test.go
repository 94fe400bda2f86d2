package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keystay/keystay/internal/wizard/rules"
)

func bookingTestDefinition() Definition {
	return Definition{
		Kind:  "booking",
		Title: "Book this home",
		Steps: []Step{
			{ID: "details", Label: "Your details", Order: 0, Validate: rules.All(
				rules.Required("full_name", "move_in_date"),
				rules.Phone("phone"),
				rules.FutureDate("move_in_date"),
			)},
			{ID: "terms", Label: "Terms", Order: 1, Validate: rules.Required("accept_terms")},
			{ID: "review", Label: "Review", Order: 2, Validate: rules.Always()},
		},
	}
}

func futureDate() string {
	return time.Now().UTC().AddDate(0, 2, 0).Format(rules.DateLayout)
}

func TestInitStartsAtFirstStepWithSeededForm(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", Form{"full_name": "Asha Rao", "phone": "9876543210"})

	assert.Equal(t, "details", st.CurrentStepID)
	assert.Equal(t, PhaseEditing, st.Phase)
	assert.Equal(t, "Asha Rao", st.Form["full_name"])
	assert.NotEmpty(t, st.SessionID)
}

func TestAdvanceBlockedWhileGateFails(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", Form{"full_name": "Asha Rao", "phone": "9876543210"})

	// move_in_date unset: the details gate must hold the step.
	require.False(t, CanAdvance(def, st).Valid)
	moved := Advance(def, st)
	assert.Equal(t, "details", moved.CurrentStepID)

	st = SetField(st, "move_in_date", futureDate())
	require.True(t, CanAdvance(def, st).Valid)
	moved = Advance(def, st)
	assert.Equal(t, "terms", moved.CurrentStepID)
}

func TestAdvanceNeverSkipsSteps(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", Form{
		"full_name":    "Asha Rao",
		"phone":        "9876543210",
		"move_in_date": futureDate(),
		"accept_terms": "yes",
	})

	st = Advance(def, st)
	assert.Equal(t, "terms", st.CurrentStepID)
	st = Advance(def, st)
	assert.Equal(t, "review", st.CurrentStepID)

	// Last step: advance is a silent no-op.
	st = Advance(def, st)
	assert.Equal(t, "review", st.CurrentStepID)
}

func TestRetreatFromFirstStepIsNoOp(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", nil)

	moved := Retreat(def, st)
	assert.Equal(t, "details", moved.CurrentStepID)
}

func TestRetreatNeverValidates(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", Form{
		"full_name":    "Asha Rao",
		"phone":        "9876543210",
		"move_in_date": futureDate(),
	})
	st = Advance(def, st)
	require.Equal(t, "terms", st.CurrentStepID)

	// terms gate fails (accept_terms unset) but retreating is always allowed.
	require.False(t, CanAdvance(def, st).Valid)
	st = Retreat(def, st)
	assert.Equal(t, "details", st.CurrentStepID)
}

func TestJumpToOnlyMovesBackward(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", Form{
		"full_name":    "Asha Rao",
		"phone":        "9876543210",
		"move_in_date": futureDate(),
		"accept_terms": "yes",
	})
	st = Advance(def, st)
	st = Advance(def, st)
	require.Equal(t, "review", st.CurrentStepID)

	st = JumpTo(def, st, "details")
	assert.Equal(t, "details", st.CurrentStepID)

	// Forward jump past unvalidated steps is rejected silently.
	st = JumpTo(def, st, "review")
	assert.Equal(t, "details", st.CurrentStepID)

	st = JumpTo(def, st, "no-such-step")
	assert.Equal(t, "details", st.CurrentStepID)
}

func TestSetFieldIsIdempotentAndPure(t *testing.T) {
	def := bookingTestDefinition()
	st := Init(def, "user-1", nil)

	once := SetField(st, "full_name", "Asha Rao")
	twice := SetField(once, "full_name", "Asha Rao")
	assert.Equal(t, once.Form, twice.Form)

	// The original state's form is untouched.
	assert.Empty(t, st.Form["full_name"])
	assert.Equal(t, "details", once.CurrentStepID, "SetField must not advance")
}

func TestVendorCategoriesGate(t *testing.T) {
	def := Definition{
		Kind: "vendor-registration",
		Steps: []Step{
			{ID: "business", Label: "Business", Order: 0, Validate: rules.Required("business_name")},
			{ID: "categories", Label: "Categories", Order: 1, Validate: rules.MinSelected("service_types", 1)},
			{ID: "areas", Label: "Areas", Order: 2, Validate: rules.MinSelected("service_areas", 1)},
		},
	}
	st := Init(def, "user-1", Form{"business_name": "FixIt"})
	st = Advance(def, st)
	require.Equal(t, "categories", st.CurrentStepID)

	// No categories selected: advance must be rejected.
	moved := Advance(def, st)
	assert.Equal(t, "categories", moved.CurrentStepID)

	st = SetField(st, "service_types", "plumbing")
	st = Advance(def, st)
	assert.Equal(t, "areas", st.CurrentStepID)
}
