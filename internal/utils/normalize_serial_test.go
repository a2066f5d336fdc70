package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSerial(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"gx-390 123", "GX390123"},
		{"  abc-001  ", "ABC001"},
		{"ALREADY001", "ALREADY001"},
		{"", ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeSerial(tc.raw))
	}
}
