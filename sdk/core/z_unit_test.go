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
	"math"
	"testing"
)

// TestCoreDeterminism 驗證相同 seed 產生相同輸出序列
func TestCoreDeterminism(t *testing.T) {
	c1 := New(Default().New(7))
	c2 := New(Default().New(7))
	for i := 0; i < 5; i++ {
		if c1.Uint64() != c2.Uint64() {
			t.Fatalf("Uint64 mismatch at %d", i)
		}
	}
	if c1.UniformInt(1, 100) != c2.UniformInt(1, 100) {
		t.Fatalf("UniformInt mismatch")
	}
	if c1.WeightedIndex([]float64{1, 2, 3}) != c2.WeightedIndex([]float64{1, 2, 3}) {
		t.Fatalf("WeightedIndex mismatch")
	}
}

// TestUniformIntBounds 驗證 UniformInt 的含端點範圍與退化輸入
// 檢查項目: 輸出永遠落在 [lo, hi]，且 lo == hi 與 hi < lo 都回傳 lo
func TestUniformIntBounds(t *testing.T) {
	c := New(Default().New(3))
	lo, hi := 1, 6
	seenLo, seenHi := false, false
	for i := 0; i < 10000; i++ {
		v := c.UniformInt(lo, hi)
		if v < lo || v > hi {
			t.Fatalf("UniformInt out of range: %d", v)
		}
		seenLo = seenLo || v == lo
		seenHi = seenHi || v == hi
	}
	// 兩個端點都要能被抽到（10000 次不命中機率約 (5/6)^10000）
	if !seenLo || !seenHi {
		t.Fatalf("endpoints not inclusive: lo=%v hi=%v", seenLo, seenHi)
	}

	if got := c.UniformInt(5, 5); got != 5 {
		t.Fatalf("expected degenerate range to return lo, got %d", got)
	}
	if got := c.UniformInt(9, 2); got != 9 {
		t.Fatalf("expected inverted range to return lo, got %d", got)
	}
}

// TestWeightedIndexDistribution 驗證 WeightedIndex 的經驗分佈
// 檢查項目: weights [1,1,2] 時 index 2 的頻率收斂到 0.5，零權重永不中選
func TestWeightedIndexDistribution(t *testing.T) {
	c := New(Default().New(17))
	weights := []float64{1, 1, 2, 0}
	trials := 100000
	counts := make([]int, len(weights))
	for i := 0; i < trials; i++ {
		idx := c.WeightedIndex(weights)
		if idx < 0 || idx >= len(weights) {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}
	if counts[3] != 0 {
		t.Fatalf("zero weight selected %d times", counts[3])
	}
	rate := float64(counts[2]) / float64(trials)
	if math.Abs(rate-0.5) > 0.01 {
		t.Fatalf("expected index 2 rate ~0.50, got %.4f", rate)
	}
}

// TestWeightedIndexSentinel 驗證無效權重的哨兵回傳
// 檢查項目: 空權重與總和為 0 的權重回傳 -1
func TestWeightedIndexSentinel(t *testing.T) {
	c := New(Default().New(19))
	if got := c.WeightedIndex(nil); got != -1 {
		t.Fatalf("expected -1 for empty weights, got %d", got)
	}
	if got := c.WeightedIndex([]float64{0, 0, 0}); got != -1 {
		t.Fatalf("expected -1 for zero-sum weights, got %d", got)
	}
}

// TestSnapshotRestoreReplay 驗證快照/還原後輸出序列一致
// 檢查項目: Restore 之後重放的序列必須與快照點之後的序列相同
func TestSnapshotRestoreReplay(t *testing.T) {
	for name, f := range map[string]PRNGFactory{
		"pcg64":    Default(),
		"splitmix": &SplitMixFactory{},
	} {
		rng := f.New(42)
		rng.Uint64() // 先推進幾步
		rng.Uint64()

		snap, err := rng.Snapshot()
		if err != nil {
			t.Fatalf("[%s] snapshot: %v", name, err)
		}
		want := []uint64{rng.Uint64(), rng.Uint64(), rng.Uint64()}

		if err := rng.Restore(snap); err != nil {
			t.Fatalf("[%s] restore: %v", name, err)
		}
		for i, w := range want {
			if got := rng.Uint64(); got != w {
				t.Fatalf("[%s] replay mismatch at %d: got %d want %d", name, i, got, w)
			}
		}
	}
}

// TestCorePick 驗證 Pick 的哨兵與取值範圍
func TestCorePick(t *testing.T) {
	c := New(Default().New(9))
	if got := c.Pick(nil); got != -1 {
		t.Fatalf("expected -1 for empty pick, got %d", got)
	}
	src := []int{10, 20, 30}
	for i := 0; i < 100; i++ {
		v := c.Pick(src)
		if v != 10 && v != 20 && v != 30 {
			t.Fatalf("picked value not in source: %d", v)
		}
	}
}
