package reservationdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestCountUnmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want GuestCount
	}{
		{`4`, 4},
		{`"4"`, 4},
		{`" 12 "`, 12},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		var in ReservationInput
		require.NoError(t, json.Unmarshal([]byte(`{"guestCount":`+tc.in+`}`), &in), tc.in)
		assert.Equal(t, tc.want, in.GuestCount, tc.in)
	}

	for _, bad := range []string{`"two"`, `2.5`, `true`} {
		var in ReservationInput
		assert.Error(t, json.Unmarshal([]byte(`{"guestCount":`+bad+`}`), &in), bad)
	}
}

func TestHoneypot(t *testing.T) {
	fields := func(raw string) map[string]json.RawMessage {
		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(raw), &m))
		return m
	}
	assert.True(t, Honeypot(fields(`{"website":"http://spam.example","guestCount":"x"}`)))
	assert.False(t, Honeypot(fields(`{"website":"   "}`)))
	assert.False(t, Honeypot(fields(`{"website":1}`)))
	assert.False(t, Honeypot(fields(`{"fullName":"A"}`)))
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2026-11-02")
	require.True(t, ok)
	assert.Equal(t, "2026-11-02T00:00:00Z", d.Format("2006-01-02T15:04:05Z07:00"))
	_, ok = ParseDate("02/11/2026")
	assert.False(t, ok)
}
