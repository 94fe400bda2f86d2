package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitListTrimsEntries(t *testing.T) {
	got := SplitList(" Indiranagar , Koramangala,HSR Layout ")
	assert.Equal(t, []string{"Indiranagar", "Koramangala", "HSR Layout"}, got)
}

func TestSplitListKeepsDuplicatesAndEmpties(t *testing.T) {
	// Duplicate and empty entries survive both directions; see DESIGN.md.
	got := SplitList("plumbing,plumbing,, electrical")
	assert.Equal(t, []string{"plumbing", "plumbing", "", "electrical"}, got)
}

func TestJoinSplitRoundTrip(t *testing.T) {
	entries := SplitList("a, b ,c")
	assert.Equal(t, "a,b,c", JoinList(entries))
	assert.Equal(t, entries, SplitList(JoinList(entries)))
}

func TestSplitListEmptyString(t *testing.T) {
	assert.Nil(t, SplitList(""))
}
