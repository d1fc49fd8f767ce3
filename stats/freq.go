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

// Package stats 提供 seq 演算法輸出的經驗分佈驗證：
// 類別計數、卡方適合度檢定（gonum）與報表渲染。
package stats

import (
	"fmt"
	"sort"
	"strings"
)

// Freq 是固定類別數的出現次數計數器。
type Freq struct {
	counts []int
	total  int
}

// NewFreq 建立 n 個類別的計數器。
func NewFreq(n int) *Freq {
	return &Freq{counts: make([]int, n)}
}

// Observe 對類別 i 計一次數。範圍外的 i（含哨兵 -1）會被忽略，
// 讓呼叫端可以直接餵入帶哨兵的演算法輸出。
func (f *Freq) Observe(i int) {
	if i < 0 || i >= len(f.counts) {
		return
	}
	f.counts[i]++
	f.total++
}

// Counts 回傳各類別的計數（內部 slice，讀取用）。
func (f *Freq) Counts() []int { return f.counts }

// Total 回傳有效觀測總數。
func (f *Freq) Total() int { return f.total }

// SubsetFreq 以「保留的 index 組合」為類別的計數器，
// 用於驗證 RandomResize 的 k-子集合均勻性。
type SubsetFreq struct {
	counts map[string]int
	total  int
}

func NewSubsetFreq() *SubsetFreq {
	return &SubsetFreq{counts: map[string]int{}}
}

// Observe 計一次子集合出現。indexes 必須已按原始順序排列
// （RandomResize 的輸出天然滿足）。
func (s *SubsetFreq) Observe(indexes []int) {
	s.counts[subsetKey(indexes)]++
	s.total++
}

// Categories 回傳實際出現過的子集合數。
func (s *SubsetFreq) Categories() int { return len(s.counts) }

// Total 回傳觀測總數。
func (s *SubsetFreq) Total() int { return s.total }

// Sorted 回傳按 key 排序的 (標籤, 計數) 對，保證輸出順序穩定。
func (s *SubsetFreq) Sorted() ([]string, []int) {
	keys := make([]string, 0, len(s.counts))
	for k := range s.counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	counts := make([]int, len(keys))
	for i, k := range keys {
		counts[i] = s.counts[k]
	}
	return keys, counts
}

func subsetKey(indexes []int) string {
	var b strings.Builder
	for i, v := range indexes {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}
