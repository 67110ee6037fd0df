package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
)

func TestParsePassword(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: entity.ErrEmptyPassword},
		{name: "one character", raw: "a", wantErr: entity.ErrPasswordTooShort},
		{name: "short", raw: "short", wantErr: entity.ErrPasswordTooShort},
		{name: "seven characters", raw: "1234567", wantErr: entity.ErrPasswordTooShort},
		{name: "eight characters", raw: "12345678"},
		{name: "typical", raw: "password123"},
		{name: "spaces only", raw: "        "},
		{name: "multibyte counted as characters", raw: "ññññññññ"},
		{name: "multibyte too short", raw: "ñññññññ", wantErr: entity.ErrPasswordTooShort},
		{name: "long", raw: strings.Repeat("x", 100)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entity.ParsePassword(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}

func TestParsePassword_AllLengthsFromEight(t *testing.T) {
	for n := entity.MinPasswordLength; n <= 64; n++ {
		_, err := entity.ParsePassword(strings.Repeat("p", n))
		assert.NoError(t, err, "length %d", n)
	}
}

func TestPassword_Matches(t *testing.T) {
	a, err := entity.ParsePassword("password123")
	require.NoError(t, err)
	b, err := entity.ParsePassword("password123")
	require.NoError(t, err)
	c, err := entity.ParsePassword("wrongpassword")
	require.NoError(t, err)

	assert.True(t, a.Matches(b))
	assert.False(t, a.Matches(c))
	assert.True(t, a == b)
}
