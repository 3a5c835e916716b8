package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 0},
		{7, 7},
		{8, 0},
		{-1, 7},
		{-9, 7},
		{17, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Wrap(tc.in), "Wrap(%d)", tc.in)
	}
}

func TestIndexOf(t *testing.T) {
	assert.Equal(t, 1, IndexOf("#00FF00"))
	assert.Equal(t, 6, IndexOf("#ffa500"))
	assert.Equal(t, -1, IndexOf("#123456"))
	assert.Equal(t, "Purple", At(-1).Name)
	assert.Equal(t, 8, Len())
}
