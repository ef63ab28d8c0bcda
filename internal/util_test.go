package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconstructPath(t *testing.T) {
	cameFrom := map[string]string{"b": "a", "c": "b", "d": "c"}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ReconstructPath(cameFrom, "d", "a"))
	assert.Equal(t, []string{"a"}, ReconstructPath(cameFrom, "a", "a"))
}

func TestReconstructPath_BrokenChain(t *testing.T) {
	cameFrom := map[int]int{3: 2}
	assert.Equal(t, []int{2, 3}, ReconstructPath(cameFrom, 3, 0))
}

func TestCopyMap(t *testing.T) {
	assert.Nil(t, CopyMap[int, bool](nil))

	src := map[int]bool{1: true}
	dst := CopyMap(src)
	dst[2] = true
	assert.Len(t, src, 1)
	assert.Len(t, dst, 2)
}
