package entity_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-auth-service/internal/domain/entity"
)

func TestParseEmail(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "valid", raw: "test@example.com", want: "test@example.com"},
		{name: "subdomain", raw: "first.last@mail.example.co.uk", want: "first.last@mail.example.co.uk"},
		{name: "plus tag", raw: "user+tag@example.org", want: "user+tag@example.org"},
		{name: "normalizes case and spaces", raw: "  Test@Example.COM ", want: "test@example.com"},
		{name: "empty", raw: "", wantErr: entity.ErrEmptyEmail},
		{name: "whitespace only", raw: "   ", wantErr: entity.ErrInvalidEmailFormat},
		{name: "tab only", raw: "\t", wantErr: entity.ErrInvalidEmailFormat},
		{name: "missing at symbol", raw: "invalid-email", wantErr: entity.ErrInvalidEmailFormat},
		{name: "missing domain", raw: "user@", wantErr: entity.ErrInvalidEmailFormat},
		{name: "missing local part", raw: "@example.com", wantErr: entity.ErrInvalidEmailFormat},
		{name: "domain without dot", raw: "user@example", wantErr: entity.ErrInvalidEmailFormat},
		{name: "double at", raw: "a@b@example.com", wantErr: entity.ErrInvalidEmailFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := entity.ParseEmail(tt.raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, entity.Email{}, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseEmail_GeneratedAddresses(t *testing.T) {
	const letters = "abcdefghijklmnopqrstuvwxyz0123456789"
	word := func(r *rand.Rand, n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = letters[r.Intn(len(letters))]
		}
		return string(b)
	}
	tlds := []string{"com", "org", "net", "io", "dev"}
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		raw := fmt.Sprintf("%s@%s.%s", word(r, 1+r.Intn(12)), word(r, 1+r.Intn(12)), tlds[r.Intn(len(tlds))])
		_, err := entity.ParseEmail(raw)
		assert.NoError(t, err, raw)
	}
}

func TestEmail_Equality(t *testing.T) {
	a, err := entity.ParseEmail("test@example.com")
	require.NoError(t, err)
	b, err := entity.ParseEmail("TEST@example.com")
	require.NoError(t, err)

	assert.True(t, a == b)

	seen := map[entity.Email]int{a: 1}
	assert.Equal(t, 1, seen[b])
}
