package auth

import (
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.NoError(t, ComparePassword(hash, "hunter22"))
	assert.ErrorIs(t, ComparePassword(hash, "hunter23"), common.ErrorInvalidCredentials)
	assert.ErrorIs(t, ComparePassword("", "hunter22"), common.ErrorInvalidCredentials)
}
