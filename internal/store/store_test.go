package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIDScan(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "abc-123", "abc-123"},
		{"bytes", []byte("abc-123"), "abc-123"},
		{"int64", int64(42), "42"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id flexID
			require.NoError(t, id.Scan(tt.value))
			assert.Equal(t, tt.want, string(id))
		})
	}

	var id flexID
	assert.Error(t, id.Scan(3.14))
}
