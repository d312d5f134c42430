package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeMulUint64(t *testing.T) {
	p, err := SafeMulUint64(100, 3)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(300), p)

	p, err = SafeMulUint64(0, 12345)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(0), p)

	p, err = SafeMulUint64(12345, 0)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(0), p)

	_, err = SafeMulUint64(math.MaxUint64/2+1, 2)
	assert.NotEqual(t, nil, err)

	_, err = SafeMulUint64(math.MaxUint64, math.MaxUint64)
	assert.NotEqual(t, nil, err)

	p, err = SafeMulUint64(math.MaxUint64, 1)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(math.MaxUint64), p)
}

func TestSafeMul(t *testing.T) {
	v := SafeMul(math.MaxUint64, math.MaxUint64)
	assert.Equal(t, 1, v.Sign())

	expected := SafeMul(math.MaxUint64, 1)
	assert.Equal(t, uint64(math.MaxUint64), expected.Uint64())
}

func TestSafeAddUint64(t *testing.T) {
	s, err := SafeAddUint64(1, 2)
	assert.Equal(t, nil, err)
	assert.Equal(t, uint64(3), s)

	_, err = SafeAddUint64(math.MaxUint64, 1)
	assert.NotEqual(t, nil, err)
}
