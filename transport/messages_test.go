package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_ScalarExpandsToN(t *testing.T) {
	v := ScalarValue(7)
	assert.True(t, v.IsScalar())
	assert.Equal(t, -1, v.Len())
	assert.Equal(t, []int64{7, 7, 7}, v.Expand(3))
}

func TestValue_SeriesPassesThrough(t *testing.T) {
	v := SeriesValue([]int64{1, 2, 3})
	assert.False(t, v.IsScalar())
	assert.Equal(t, 3, v.Len())
	assert.Equal(t, []int64{1, 2, 3}, v.Expand(3))
}
