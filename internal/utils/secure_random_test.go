package utils_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velopix/pix_backend/internal/utils"
)

func TestGenerateSecureRandomString(t *testing.T) {
	s, err := utils.GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32) // hex doubles the byte count
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]+$`), s)

	other, err := utils.GenerateSecureRandomString(16)
	require.NoError(t, err)
	assert.NotEqual(t, s, other)
}

func TestNewTransactionReference(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	ref, err := utils.NewTransactionReference(now)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^E20250314092653[0-9A-F]{8}$`), ref)

	other, err := utils.NewTransactionReference(now)
	require.NoError(t, err)
	assert.NotEqual(t, ref, other, "random suffix should differ between references")
}

func TestNewTransactionReferenceUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	local := time.Date(2025, 3, 14, 9, 0, 0, 0, loc)

	ref, err := utils.NewTransactionReference(local)
	require.NoError(t, err)

	assert.Contains(t, ref, "20250314120000")
}
