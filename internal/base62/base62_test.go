package base62

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    uint64
		expected string
	}{
		{name: "zero", input: 0, expected: "0"},
		{name: "one", input: 1, expected: "1"},
		{name: "nine", input: 9, expected: "9"},
		{name: "ten is first upper", input: 10, expected: "A"},
		{name: "thirty-five is last upper", input: 35, expected: "Z"},
		{name: "thirty-six is first lower", input: 36, expected: "a"},
		{name: "sixty-one is last symbol", input: 61, expected: "z"},
		{name: "sixty-two rolls over", input: 62, expected: "10"},
		{name: "large number", input: 123456789, expected: "8M0kX"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Encode(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected uint64
	}{
		{name: "zero", input: "0", expected: 0},
		{name: "first upper", input: "A", expected: 10},
		{name: "last symbol", input: "z", expected: 61},
		{name: "two symbols", input: "10", expected: 62},
		{name: "large number", input: "8M0kX", expected: 123456789},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.input))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	nums := []uint64{0, 1, 10, 61, 62, 100, 3843, 3844, 1000000, 123456789}
	for _, num := range nums {
		assert.Equal(t, num, Decode(Encode(num)), "round trip for %d", num)
	}
}

// TestEncodeInjective проверяет что разным числам соответствуют разные коды.
func TestEncodeInjective(t *testing.T) {
	seen := make(map[string]uint64)
	for num := uint64(0); num < 10000; num++ {
		code := Encode(num)
		prev, ok := seen[code]
		assert.False(t, ok, "code %s already issued for %d", code, prev)
		seen[code] = num
	}
}
