package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int64
	}{
		{name: "blank", input: "", want: nil},
		{name: "plain", input: "1234567890", want: ptr(1234567890)},
		{name: "formatted", input: "+1 (555) 010-2030", want: ptr(15550102030)},
		{name: "leading zeros", input: "0044 20 7946 0958", want: ptr(442079460958)},
		{name: "full width", input: "０１２３", want: ptr(123)},
		{name: "no digits", input: "n/a", want: nil},
		{name: "overflow", input: "123456789012345678901234", want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizePhone(tc.input)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func ptr(n int64) *int64 { return &n }
