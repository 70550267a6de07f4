package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var available = []float64{1, 2, 3, 3.5, 4, 10}

func TestChapterSelection(t *testing.T) {
	tests := []struct {
		input string
		want  []float64
	}{
		{input: "1-3", want: []float64{1, 2, 3}},
		{input: "3-4,10", want: []float64{3, 3.5, 4, 10}},
		{input: "2, 2, 3.5", want: []float64{2, 3.5}},
		{input: "99", want: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ChapterSelection(tt.input, available)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChapterSelection_Invalid(t *testing.T) {
	for _, input := range []string{"5-1", "a", "1-2-3", "1-b"} {
		_, err := ChapterSelection(input, available)
		assert.Error(t, err, input)
	}
}

func TestGetMinAndMax(t *testing.T) {
	first, last, err := GetMinAndMax(available)
	require.NoError(t, err)
	assert.Equal(t, 1.0, first)
	assert.Equal(t, 10.0, last)

	_, _, err = GetMinAndMax([]float64{})
	assert.Error(t, err)
}
