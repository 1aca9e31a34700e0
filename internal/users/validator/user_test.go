package validator

import (
	"strings"
	"testing"

	"beautify/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	v := NewUserValidator(logger.Discard())

	assert.NoError(t, v.ValidateEmail("a@x.com"))
	assert.Error(t, v.ValidateEmail(""))
	assert.Error(t, v.ValidateEmail("admin"))
	assert.Error(t, v.ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateProfile(t *testing.T) {
	v := NewUserValidator(logger.Discard())

	assert.NoError(t, v.ValidateProfile(map[string]any{"name": "Ana", "photo": "https://img"}))
	assert.NoError(t, v.ValidateProfile(nil))
	assert.Error(t, v.ValidateProfile(map[string]any{"$where": "1"}))
	assert.Error(t, v.ValidateProfile(map[string]any{"a.b": 1}))
}

func TestStripReserved(t *testing.T) {
	profile, dropped := StripReserved(map[string]any{
		"name":  "Ana",
		"role":  "admin",
		"email": "other@x.com",
	})

	assert.Equal(t, map[string]any{"name": "Ana"}, profile)
	assert.ElementsMatch(t, []string{"role", "email"}, dropped)
}
