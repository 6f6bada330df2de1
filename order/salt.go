package order

import (
	"math"
	"math/big"
	"math/rand"
	"time"
)

// 后端按 IEEE-754 double 解析 salt，整数精度只有 53 位，
// 超过的值会在对端静默丢精度，因此必须掩掉高位。
const saltMask = (1 << 53) - 1

// NewSalt generates a per-order random salt from the wall clock and a
// random fraction, masked to the lower 53 bits.
func NewSalt() *big.Int {
	seconds := float64(time.Now().UnixNano()) / float64(time.Second)
	seed := uint64(math.Round(seconds * rand.Float64()))
	return new(big.Int).SetUint64(seed & saltMask)
}
