package common

import (
	"fmt"
	"math/big"
)

// SafeMul widens to big.Int and can not wrap.
func SafeMul(a uint64, b uint64) *big.Int {
	return big.NewInt(0).Mul(big.NewInt(0).SetUint64(a), big.NewInt(0).SetUint64(b))
}

// SafeMulUint64 multiplies in uint64 and reports wraparound by dividing the
// product back: for b != 0, a*b is exact iff (a*b)/b == a.
func SafeMulUint64(a, b uint64) (uint64, error) {
	p := a * b
	if b != 0 && p/b != a {
		return 0, fmt.Errorf("Mul overflow of a %d * b %d", a, b)
	}
	return p, nil
}

func SafeAddUint64(a, b uint64) (uint64, error) {
	s := a + b
	if s >= a && s >= b {
		return s, nil
	}
	return 0, fmt.Errorf("Add overflow of a %d + b %d", a, b)
}
