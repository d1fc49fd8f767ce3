// Copyright 2026 Zintix Labs
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
// 要求實作同時提供 4 個方法（Uint64 / Float64 / UintN / IntN）而非只有 Uint64：
//   - bounded 生成（UintN/IntN）交由 PRNG 自行實作，讓每個引擎用最合適的
//     無偏策略（乘法高位、拒絕採樣、遮罩...），不被迫走統一的慢路徑。
//   - Float64 的精度（32-bit vs 53-bit mantissa）與生成方式由 PRNG 決定。
type RAND interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
	// UintN 回傳 [0,max) 的 uint 亂數，若 max == 0 回傳 0。
	UintN(uint) uint
	// IntN 回傳 [0,max) 的 int 亂數，若 max <= 0 回傳 -1。
	IntN(int) int
}

// PRNGFactory 以指定 seed 建立新的 PRNG。
//
// 合約：在同一個實作與同一個版本下，New(seed) 必須是決定性的——
// 相同的 seed 必須產生相同的初始內部狀態與輸出序列。
// Seqlab 的所有可重現性（固定 seed → 固定決策序列）都建立在這個合約上。
type PRNGFactory interface {
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory（PCG64）。
type DefaultPRNG struct{}

// New 滿足合約
func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供 seq 演算法所需的抽樣原語。
//
// 所有演算法都以 *Core 作為明確參數傳遞，不存在 process-wide 的隱式引擎；
// Core 本身不做鎖，多 goroutine 共用同一個 Core 時由呼叫端負責同步。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// NewAuto 建立以加密隨機來源播種的 Core。
// 適合不需要重現性的呼叫端；需要固定 seed 重放時請走 Default().New(seed)。
func NewAuto() *Core {
	return New(newPCG64())
}

// UniformInt 回傳 [lo, hi] 的「含端點」均勻整數亂數。
//
// 合約：lo <= hi，違反時回傳 lo（哨兵行為，不檢查不報錯）。
// 這是 resize / pick 系列演算法唯一使用的整數抽樣原語。
func (c *Core) UniformInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + c.IntN(hi-lo+1)
}

// WeightedIndex 依權重比例抽出一個 index。
//
// 實作：一次 Float64 抽樣落在 [0, total)，再沿累積分佈線性掃描。
// 合約：至少要有一個正權重；若 total <= 0（含空輸入）回傳 -1 哨兵。
// 權重為 0 的 index 永遠不會被選中；負權重屬呼叫端合約違反，不檢查。
func (c *Core) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}

	x := c.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		x -= w
		if x < 0 {
			return i
		}
	}
	// 浮點累積誤差的極端情況：退回最後一個正權重
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return -1
}

// Pick 從列表中隨機選取一個元素，若列表為空回傳 -1
// 熱路徑中只使用哨兵值回傳
func (c *Core) Pick(src []int) int {
	if len(src) == 0 {
		return -1
	}
	idx := c.IntN(len(src))
	return src[idx]
}
