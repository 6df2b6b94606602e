package contact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5551234567", NormalizePhone("(555) 123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("1-555-123-4567"))
	assert.Equal(t, "5551234567", NormalizePhone("5551234567"))
	assert.Equal(t, "", NormalizePhone("12345"))
}

func TestValidUSPhone(t *testing.T) {
	assert.True(t, ValidUSPhone("5551234567"))
	assert.True(t, ValidUSPhone("(555) 123-4567"))
	assert.True(t, ValidUSPhone("1-555-123-4567"))
	assert.False(t, ValidUSPhone("0551234567"), "area code cannot start with 0")
	assert.False(t, ValidUSPhone("1551234567"), "area code cannot start with 1")
	assert.False(t, ValidUSPhone("555123"))
	assert.False(t, ValidUSPhone(""))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("resident@example.com"))
	assert.True(t, ValidEmail("first.last+tag@sub.example.org"))
	assert.False(t, ValidEmail("not-an-email"))
	assert.False(t, ValidEmail("missing@tld"))
	assert.False(t, ValidEmail(""))
}
