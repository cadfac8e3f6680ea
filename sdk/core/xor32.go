// Package core implements the xorshift32 random number generator.
//
// The xorshift family of generators is designed by George Marsaglia.
// The (13, 17, 5) triple used here is the canonical 32-bit variant
// from "Xorshift RNGs" (2003).

package core

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
)

// xor32FloatUnit 以 2^32-1 為分母；狀態值域是 [1, 0xFFFFFFFF]，
// 所以 Float64 的值域是 (0, 1]。分母刻意不是 2^32，沿用既定合約。
const xor32FloatUnit = 1.0 / float64(0xFFFFFFFF)

// Xor32 為 32-bit 狀態、32-bit 輸出的 xorshift 產生器。
//
// 狀態轉移：x ^= x<<13; x ^= x>>17; x ^= x<<5。
// 全零狀態是不動點，因此 seed 0 一律重映射為 1。
type Xor32 struct {
	state uint32
}

// --------------------------------------
// 提供兩種New方式
// --------------------------------------

func newXor32() *Xor32 {
	seed, _ := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	return NewXor32(uint32(seed.Int64()))
}

// NewXor32 以指定 seed 建立新的 Xor32 實例；seed 0 重映射為 1。
func NewXor32(seed uint32) *Xor32 {
	if seed == 0 {
		seed = 1
	}
	return &Xor32{state: seed}
}

//---------------------------------------
// 回傳介面方法
//---------------------------------------

// Uint32 推進狀態並回傳新狀態。
func (r *Xor32) Uint32() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 回傳 state/0xFFFFFFFF（32-bit 精度）。
func (r *Xor32) Float64() float64 {
	return float64(r.Uint32()) * xor32FloatUnit
}

// Snapshot 取得當下內部狀態（4 bytes, big-endian）。
func (r *Xor32) Snapshot() ([]byte, error) {
	return []byte{
		byte(r.state >> 24),
		byte(r.state >> 16),
		byte(r.state >> 8),
		byte(r.state),
	}, nil
}

// Restore 依 Snapshot 輸出還原內部狀態。
// 還原出全零狀態視同 seed 0，重映射為 1。
func (r *Xor32) Restore(data []byte) error {
	if len(data) != 4 {
		return fmt.Errorf("xor32 restore: want 4 bytes, got %d", len(data))
	}
	s := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
	if s == 0 {
		s = 1
	}
	r.state = s
	return nil
}
