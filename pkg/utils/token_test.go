package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomToken(t *testing.T) {
	token, err := RandomToken(6)
	assert.NoError(t, err)
	assert.Len(t, token, 6)
	for _, c := range token {
		assert.Contains(t, tokenAlphabet, string(c))
	}

	other, err := RandomToken(6)
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}
