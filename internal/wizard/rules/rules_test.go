package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	rule := Required("full_name", "phone")

	out := rule(map[string]string{"full_name": "Asha", "phone": "  "})
	assert.False(t, out.Valid)
	assert.Equal(t, "phone", out.Field)

	out = rule(map[string]string{"full_name": "Asha", "phone": "9876543210"})
	assert.True(t, out.Valid)
}

func TestEmail(t *testing.T) {
	rule := Email("email")
	for _, bad := range []string{"", "plain", "@x.com", "a@", "a@@b.c"} {
		assert.False(t, rule(map[string]string{"email": bad}).Valid, "expected %q invalid", bad)
	}
	assert.True(t, rule(map[string]string{"email": "asha@example.com"}).Valid)
}

func TestPhoneStripsFormatting(t *testing.T) {
	rule := Phone("phone")
	assert.True(t, rule(map[string]string{"phone": "(987) 654-3210"}).Valid)
	assert.False(t, rule(map[string]string{"phone": "12345"}).Valid)
	assert.False(t, rule(map[string]string{"phone": "+91 98765 43210"}).Valid)
}

func TestFutureDate(t *testing.T) {
	rule := FutureDate("move_in_date")

	assert.False(t, rule(map[string]string{"move_in_date": ""}).Valid)
	assert.False(t, rule(map[string]string{"move_in_date": "31-12-2030"}).Valid)
	assert.False(t, rule(map[string]string{"move_in_date": time.Now().UTC().Format(DateLayout)}).Valid)

	future := time.Now().UTC().AddDate(0, 1, 0).Format(DateLayout)
	assert.True(t, rule(map[string]string{"move_in_date": future}).Valid)
}

func TestMinSelected(t *testing.T) {
	rule := MinSelected("categories", 1)
	assert.False(t, rule(map[string]string{"categories": ""}).Valid)
	assert.False(t, rule(map[string]string{"categories": " , "}).Valid)
	assert.True(t, rule(map[string]string{"categories": "plumbing"}).Valid)
	assert.True(t, rule(map[string]string{"categories": "plumbing, electrical"}).Valid)
}

func TestAllReturnsFirstFailure(t *testing.T) {
	rule := All(Required("email"), Email("email"))
	out := rule(map[string]string{})
	assert.False(t, out.Valid)
	assert.Equal(t, "email", out.Field)
	assert.Contains(t, out.Message, "required")
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "9876543210", NormalizePhone("(987) 654-3210"))
	assert.Equal(t, "919876543210", NormalizePhone("+91 98765 43210"))
	assert.Equal(t, "", NormalizePhone("abc"))
}
