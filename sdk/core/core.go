// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

// PRNG 定義 Core 所需的亂數來源，需同時支援取樣與狀態保存/還原。
type PRNG interface {
	RAND
	Restorable
}

// Restorable 定義可快照與還原的狀態介面。
type Restorable interface {
	// Snapshot 回傳可用於還原的序列化狀態。
	Snapshot() ([]byte, error)
	// Restore 依序列化狀態還原 PRNG 內部狀態。
	Restore([]byte) error
}

// RAND 定義核心亂數取樣能力。
//
// 與一般 PRNG 合約不同，這裡只要求兩個原語：Uint32 與 Float64。
// 所有 bounded 取樣（IntRange / WeightedIndex / Shuffle / Pick）一律由
// Core 以 Float64 推導。這不是效能考量，而是「抽號順序即合約」：
// 模擬結果必須可逐位重現，任何 rejection-sampling 或 fast-path 都會
// 改變每次操作消耗的亂數個數，進而改變整條序列。
type RAND interface {
	// Uint32 回傳下一個 32-bit 狀態輸出。
	Uint32() uint32
	// Float64 回傳 state/0xFFFFFFFF，值域近似 [0,1)（最大狀態時可達 1.0）。
	Float64() float64
}

// CoreFactory 負責生產 PRNG，供 Machine/Simulator 建池時使用。
type CoreFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：相同 seed 必須產生相同的初始內部狀態與輸出序列。
	// seed 的生命週期由上層統一管理：未提供時由上層產生並保存 baseSeed，
	// 後續所有 Machine/Sim 皆由 baseSeed 以固定算法派生子 seed。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 CoreFactory，產出 Xor32。
type DefaultPRNG struct{}

// New 滿足合約。seed 只取低 32 bits；0 會被重映射為 1。
func (d *DefaultPRNG) New(seed int64) PRNG {
	return NewXor32(uint32(seed))
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供模擬用的取樣原語。
//
// 每個方法消耗的亂數個數是固定且文件化的，呼叫端（各遊戲邏輯）
// 必須以固定順序呼叫這些原語。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// IntRange 回傳 [min,max] 的整數（含端點），消耗 1 次 Float64。
//
// 計算式固定為 floor(f*(max-min+1))+min。當 Float64 恰好回傳 1.0
// （狀態為 0xFFFFFFFF）時會落在 max+1，夾回 max。
func (c *Core) IntRange(min, max int) int {
	if max < min {
		return min
	}
	n := int(c.Float64()*float64(max-min+1)) + min
	if n > max {
		n = max
	}
	return n
}

// WeightedIndex 以線性扣除法對權重表取樣，消耗至多 1 次 Float64。
//
//   - 總權重為 0 時直接回傳最後一格（退化保底，不消耗亂數）。
//   - r = Float64()*total，逐格扣除，r <= 0 即中選。
//   - 浮點捨入導致掃完未中時，回傳最後一格。
//
// 空表回傳 -1 哨兵。
func (c *Core) WeightedIndex(weights []int) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return len(weights) - 1
	}
	r := c.Float64() * float64(total)
	for i, w := range weights {
		r -= float64(w)
		if r <= 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Pick 從列表中均勻選取一個元素，消耗 1 次 Float64；空列表回傳 -1。
// 熱路徑中只使用哨兵值回傳。
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	return src[c.IntRange(0, len(src)-1)]
}

// ShuffleInts 使用 Fisher-Yates 對 []int 進行就地隨機重排，
// 消耗 len(src)-1 次 Float64（len <= 1 時不消耗）。
//
// 由尾端往前掃，每一步 j 取 [0,i]，保證 N! 種排列等機率出現，
// 且零配置（就地交換）。
func (c *Core) ShuffleInts(src []int) {
	if len(src) <= 1 {
		return
	}

	for i := len(src) - 1; i > 0; i-- {
		j := c.IntRange(0, i)
		src[i], src[j] = src[j], src[i]
	}
}
