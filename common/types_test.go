package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressValidity(t *testing.T) {
	assert.Equal(t, false, UndefAddress.IsValid())
	assert.Equal(t, false, Address("").IsValid())
	assert.Equal(t, true, Address("creatorX").IsValid())
}

func TestAddressBytes(t *testing.T) {
	assert.Equal(t, []byte("tokenA"), Address("tokenA").Bytes())
	assert.Equal(t, 0, len(UndefAddress.Bytes()))
}
