package converter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress(1, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, Address{}, addr)

	addr, err = NewAddress(16, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, Address{Channel: 15, Group: 2, Source: 5}, addr)

	tests := []struct {
		name                   string
		channel, group, source int
	}{
		{"channel zero", 0, 0, 0},
		{"channel 17", 17, 0, 0},
		{"negative group", 1, -1, 0},
		{"group too large", 1, 64, 0},
		{"source too large", 1, 0, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAddress(tt.channel, tt.group, tt.source)
			assert.Error(t, err)
		})
	}
}
