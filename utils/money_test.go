package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountParsesAndRounds(t *testing.T) {
	d, err := Amount("12.5")
	assert.NoError(t, err)
	assert.Equal(t, "12.50", FormatAmount(d))

	d, err = Amount("0.005")
	assert.NoError(t, err)
	assert.Equal(t, "0.01", FormatAmount(d))

	d, err = Amount("0")
	assert.NoError(t, err)
	assert.Equal(t, "0.00", FormatAmount(d))
}

func TestAmountRejectsGarbage(t *testing.T) {
	_, err := Amount("abc")
	assert.Error(t, err)

	_, err = Amount("-1.00")
	assert.Error(t, err)

	_, err = Amount("")
	assert.Error(t, err)
}
