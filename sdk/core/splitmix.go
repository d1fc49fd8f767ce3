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

import (
	"encoding/binary"
	"errors"
)

var errBadState = errors.New("core: bad prng state length")

// SplitMix64 為 64-bit 狀態的極簡產生器（Steele/Lea/Flood, JDK SplittableRandom）。
//
// 定位：輕量替代引擎。狀態只有一個 uint64，快照/還原成本極低，
// 適合測試與需要大量短生命週期來源的場景。統計品質不如 PCG64，
// 正式模擬請使用 DefaultPRNG。
type SplitMix64 struct {
	state uint64
}

// SplitMixFactory 實作 PRNGFactory。
type SplitMixFactory struct{}

// New 滿足合約
func (f *SplitMixFactory) New(seed int64) PRNG {
	return &SplitMix64{state: uint64(seed)}
}

// Uint64 回傳非負整數uint64亂數
func (r *SplitMix64) Uint64() uint64 {
	r.state += 0x9e3779b97f4a7c15
	return splitmix64fin(r.state)
}

// UintN 產出[0,n) 的uint整數，若 max == 0 回傳 0
func (r *SplitMix64) UintN(max uint) uint {
	if max == 0 {
		return 0
	}
	return uint(r.Uint64() % uint64(max)) // 輕量引擎接受 modulo bias
}

// IntN 產出[0,n) 的整數，若 max <= 0 回傳 -1
func (r *SplitMix64) IntN(max int) int {
	if max <= 0 {
		return -1
	}
	return int(r.Uint64() % uint64(max))
}

// Float64 產出float64(53bits精度)
func (r *SplitMix64) Float64() float64 {
	return float64(r.Uint64()<<11>>11) / (1 << 53)
}

// Snapshot 取得當下內部狀態
func (r *SplitMix64) Snapshot() ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, r.state), nil
}

// Restore 恢復內部狀態
func (r *SplitMix64) Restore(data []byte) error {
	if len(data) != 8 {
		return errBadState
	}
	r.state = binary.BigEndian.Uint64(data)
	return nil
}

// splitmix64fin 是 SplitMix64 的輸出函數（finalizer）。
// 與 pcg64.go 的 splitmix64 使用相同常數，但這裡作用在遞增後的狀態上。
func splitmix64fin(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
