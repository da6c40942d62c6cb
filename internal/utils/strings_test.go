package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsIgnoreCase(t *testing.T) {
	assert.True(t, ContainsIgnoreCase("Starbucks Coffee", "starbucks"))
	assert.True(t, ContainsIgnoreCase("스타벅스", "타벅"))
	assert.True(t, ContainsIgnoreCase("anything", ""))
	assert.False(t, ContainsIgnoreCase("스타벅스", "커피"))
}

func TestIsValidQuery(t *testing.T) {
	assert.True(t, IsValidQuery("스타벅스"))
	assert.True(t, IsValidQuery("ㅅㅌㅂㅅ"))
	assert.True(t, IsValidQuery("40-2021-0001"))
	assert.False(t, IsValidQuery(""))
	assert.False(t, IsValidQuery("   "))
	assert.False(t, IsValidQuery("bad\x00query"))
}

func TestFormatWithCommas(t *testing.T) {
	assert.Equal(t, "0", FormatWithCommas(0))
	assert.Equal(t, "999", FormatWithCommas(999))
	assert.Equal(t, "1,000", FormatWithCommas(1000))
	assert.Equal(t, "1,234,567", FormatWithCommas(1234567))
	assert.Equal(t, "-12,345", FormatWithCommas(-12345))
}
