package model

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSupportedCurrency(t *testing.T) {
	assert.True(t, SupportedCurrency("USD"))
	assert.True(t, SupportedCurrency("UAH"))
	assert.False(t, SupportedCurrency("usd"))
	assert.False(t, SupportedCurrency("XXX"))
	assert.False(t, SupportedCurrency(""))
}

func TestCurrencyCodesSorted(t *testing.T) {
	codes := CurrencyCodes()

	assert.Len(t, codes, len(CurrencyDescriptions))
	assert.True(t, sort.StringsAreSorted(codes))
}

func TestDescriptionsMentionTheirCode(t *testing.T) {
	for code, description := range CurrencyDescriptions {
		assert.True(t, strings.Contains(description, code), "description of %s", code)
	}
}
