package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidReleaseDate(t *testing.T) {
	tests := []struct {
		date int
		want bool
	}{
		{20240315, true},
		{20240399, true},
		{20249999, true},
		{99999999, true},
		{10000101, true},
		{9991231, false},
		{20241315, false},
		{20240300, false},
		{20240032, false},
		{20240001, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidReleaseDate(tt.date), "date %d", tt.date)
	}
}
