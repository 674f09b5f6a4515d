package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "TKT-2024-0001", FormatNumber("TKT", 2024, 1))
	assert.Equal(t, "TKT-2024-0420", FormatNumber("TKT", 2024, 420))
	assert.Equal(t, "TKT-2024-12345", FormatNumber("TKT", 2024, 12345))
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		number  string
		year    int
		want    int
		wantErr bool
	}{
		{"TKT-2024-0001", 2024, 1, false},
		{"TKT-2024-0999", 2024, 999, false},
		{"TKT-2024-10000", 2024, 10000, false},
		{"TKT-2023-0005", 2024, 0, true},
		{"OPS-2024-0005", 2024, 0, true},
		{"TKT-2024-abcd", 2024, 0, true},
		{"TKT-2024-0000", 2024, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.number, func(t *testing.T) {
			got, err := ParseSequence(tt.number, "TKT", tt.year)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
