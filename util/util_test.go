package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundUp(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint64(0), RoundUp(0, 4096))
	assert.Equal(uint64(1), RoundUp(1, 4096))
	assert.Equal(uint64(1), RoundUp(4096, 4096))
	assert.Equal(uint64(2), RoundUp(5000, 4096))
	assert.Equal(uint64(16), RoundUp(512*128, 4096))
}

func TestMin(t *testing.T) {
	assert.Equal(t, uint64(3), Min(3, 7))
	assert.Equal(t, uint64(3), Min(7, 3))
}
