package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePatterns(t *testing.T) {
	assert.Equal(t, "%router%", ContainsPattern("Router"))
	assert.Equal(t, "%100!%%", ContainsPattern("100%"))
	assert.Equal(t, "%a!_b!!%", ContainsPattern("a_b!"))
	assert.Equal(t, "OPS!_X-2024-%", PrefixPattern("OPS_X-2024-"))
}

func TestLowerASCII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Router", want: "router"},
		{in: "TKT-2026-0001", want: "tkt-2026-0001"},
		{in: "ÄRGER", want: "Ärger"},
		{in: "Straße", want: "straße"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, LowerASCII(tt.in))
		})
	}

	assert.Equal(t, "%Ümlaut%", ContainsPattern("ÜMLAUT"))
}
