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

package seq

import (
	"crypto/rand"
	"fmt"
	"math"
	"math/big"
	"slices"
	"testing"

	"github.com/zintix-labs/seqlab/sdk/core"
)

// -----------------------------------------------------------------------------
// Helper Functions
// -----------------------------------------------------------------------------

func newCore(seed int64) *core.Core {
	return core.New(core.Default().New(seed))
}

func newCoreRandomSeed() *core.Core {
	seed, _ := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
	return newCore(seed.Int64())
}

// isSubsequence 檢查 sub 是否為 full 的子序列（保持相對順序）
func isSubsequence(sub, full []int) bool {
	j := 0
	for _, v := range full {
		if j < len(sub) && sub[j] == v {
			j++
		}
	}
	return j == len(sub)
}

// checkFreq 驗證各類別的出現頻率與期望機率的偏差在容忍範圍內
func checkFreq(t *testing.T, name string, counts []int, expected []float64, total int, tolerance float64) {
	t.Helper()
	for i, exp := range expected {
		got := float64(counts[i]) / float64(total)
		if math.Abs(got-exp) > tolerance {
			t.Errorf("[%s] index %d: expected prob %.3f, got %.3f (tol %.3f)",
				name, i, exp, got, tolerance)
		}
	}
}

// -----------------------------------------------------------------------------
// Tests for RandomResize
// -----------------------------------------------------------------------------

// TestRandomResizeIdentity 驗證 k >= n 時序列不變
// 檢查項目: 元素與順序完全保持原樣
func TestRandomResizeIdentity(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{3, 1, 4, 1, 5}

	for _, k := range []int{5, 6, 100} {
		in := slices.Clone(src)
		got := RandomResize(c, in, k)
		if !slices.Equal(got, src) {
			t.Fatalf("k=%d: expected identity, got %v", k, got)
		}
	}
}

// TestRandomResizeExactSize 驗證 k < n 時恰好留下 k 個原始元素且順序不變
// 檢查項目: 長度為 k、存活者皆來自原序列、相對順序為原序列的子序列
func TestRandomResizeExactSize(t *testing.T) {
	c := newCoreRandomSeed()
	full := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	for trial := 0; trial < 1000; trial++ {
		got := RandomResize(c, slices.Clone(full), 4)
		if len(got) != 4 {
			t.Fatalf("expected 4 survivors, got %d", len(got))
		}
		if !isSubsequence(got, full) {
			t.Fatalf("survivors out of order or not from source: %v", got)
		}
	}
}

// TestRandomResizeZeroK 驗證 k <= 0 時回傳空序列
func TestRandomResizeZeroK(t *testing.T) {
	c := newCoreRandomSeed()
	if got := RandomResize(c, []int{1, 2, 3}, 0); len(got) != 0 {
		t.Fatalf("expected empty result for k=0, got %v", got)
	}
	if got := RandomResize(c, []int{1, 2, 3}, -2); len(got) != 0 {
		t.Fatalf("expected empty result for k<0, got %v", got)
	}
}

// TestRandomResizeSubsetUniformity 驗證每個 k-子集合被保留的機率相等
// 檢查項目: n=5, k=2 共 C(5,2)=10 種子集合，各子集合頻率接近 1/10
func TestRandomResizeSubsetUniformity(t *testing.T) {
	c := newCore(123)
	const trials = 50000
	counts := map[string]int{}

	for i := 0; i < trials; i++ {
		got := RandomResize(c, []int{0, 1, 2, 3, 4}, 2)
		counts[fmt.Sprint(got)]++
	}

	if len(counts) != 10 {
		t.Fatalf("expected 10 distinct subsets, got %d: %v", len(counts), counts)
	}
	for subset, n := range counts {
		rate := float64(n) / float64(trials)
		if math.Abs(rate-0.1) > 0.01 {
			t.Errorf("subset %s: expected rate ~0.100, got %.4f", subset, rate)
		}
	}
}

// -----------------------------------------------------------------------------
// Tests for RandomResizeIf
// -----------------------------------------------------------------------------

// TestRandomResizeIfFilters 驗證過濾 + 縮減的組合行為
// 檢查項目: 結果只含通過 predicate 的元素且數量受 k 限制
func TestRandomResizeIfFilters(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	isEven := func(v int) bool { return v%2 == 0 }

	got := RandomResizeIf(c, src, isEven, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 survivors, got %d", len(got))
	}
	for _, v := range got {
		if v%2 != 0 {
			t.Fatalf("predicate violated: %v", got)
		}
	}
	if !isSubsequence(got, src) {
		t.Fatalf("relative order not preserved: %v", got)
	}
}

// TestRandomResizeIfZeroMeansUncapped 驗證 k == 0 的「不設上限」慣例
// 檢查項目: k=0 回傳全部通過過濾的元素，而不是空序列
func TestRandomResizeIfZeroMeansUncapped(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{1, 2, 3, 4, 5, 6}

	got := RandomResizeIf(c, src, func(v int) bool { return v%2 == 0 }, 0)
	if !slices.Equal(got, []int{2, 4, 6}) {
		t.Fatalf("k=0 must mean uncapped filter result, got %v", got)
	}
}

// TestRandomResizeIfDoesNotMutateSource 驗證過濾走新序列，原序列不被改動
func TestRandomResizeIfDoesNotMutateSource(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{5, 4, 3, 2, 1}
	want := slices.Clone(src)

	_ = RandomResizeIf(c, src, func(v int) bool { return v > 2 }, 1)
	if !slices.Equal(src, want) {
		t.Fatalf("source mutated: %v", src)
	}
}

// -----------------------------------------------------------------------------
// Tests for Pick / PickIndexIf / PickIf
// -----------------------------------------------------------------------------

// TestPickUniform 驗證 Pick 的均勻性
// 檢查項目: 每個元素的選中頻率接近 1/n
func TestPickUniform(t *testing.T) {
	c := newCore(31)
	src := []string{"a", "b", "c", "d"}
	const trials = 40000
	counts := make([]int, len(src))

	for i := 0; i < trials; i++ {
		v := Pick(c, src)
		counts[slices.Index(src, v)]++
	}
	checkFreq(t, "Pick", counts, []float64{0.25, 0.25, 0.25, 0.25}, trials, 0.01)
}

// TestPickIndexIfSentinel 驗證無命中時回傳 -1 哨兵
// 檢查項目: 空序列與全不命中都回傳 -1，不是錯誤也不是 panic
func TestPickIndexIfSentinel(t *testing.T) {
	c := newCoreRandomSeed()
	if got := PickIndexIf(c, []int{}, func(int) bool { return true }); got != -1 {
		t.Fatalf("empty input: expected -1, got %d", got)
	}
	if got := PickIndexIf(c, []int{1, 3, 5}, func(v int) bool { return v%2 == 0 }); got != -1 {
		t.Fatalf("no match: expected -1, got %d", got)
	}
}

// TestPickIndexIfSingleMatch 驗證唯一命中時的決定性
// 檢查項目: 只有一個元素命中時永遠回傳該位置
func TestPickIndexIfSingleMatch(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{1, 3, 4, 5, 7}
	for i := 0; i < 100; i++ {
		if got := PickIndexIf(c, src, func(v int) bool { return v%2 == 0 }); got != 2 {
			t.Fatalf("expected index 2, got %d", got)
		}
	}
}

// TestPickIndexIfUniformAmongMatches 驗證命中者之間的均勻性
// 檢查項目: 偶數位置之間的選中頻率接近相等
func TestPickIndexIfUniformAmongMatches(t *testing.T) {
	c := newCore(77)
	src := []int{2, 1, 4, 3, 6} // 命中 index 0, 2, 4
	const trials = 30000
	counts := map[int]int{}
	for i := 0; i < trials; i++ {
		counts[PickIndexIf(c, src, func(v int) bool { return v%2 == 0 })]++
	}
	for _, idx := range []int{0, 2, 4} {
		rate := float64(counts[idx]) / float64(trials)
		if math.Abs(rate-1.0/3) > 0.01 {
			t.Errorf("index %d: expected rate ~0.333, got %.4f", idx, rate)
		}
	}
}

// TestPickIf 驗證取值版本的命中與未命中回傳
func TestPickIf(t *testing.T) {
	c := newCoreRandomSeed()
	v, ok := PickIf(c, []int{1, 2, 3}, func(v int) bool { return v == 2 })
	if !ok || v != 2 {
		t.Fatalf("expected (2, true), got (%d, %v)", v, ok)
	}
	v, ok = PickIf(c, []int{1, 2, 3}, func(v int) bool { return v > 9 })
	if ok || v != 0 {
		t.Fatalf("expected (0, false), got (%d, %v)", v, ok)
	}
}

// -----------------------------------------------------------------------------
// Tests for PickWeighted / PickWeightedBy
// -----------------------------------------------------------------------------

// TestPickWeightedDistribution 驗證顯式權重的經驗分佈
// 檢查項目: weights [1,1,2] 時 index 2 的極限頻率為 0.5
func TestPickWeightedDistribution(t *testing.T) {
	c := newCore(5)
	src := []string{"x", "y", "z"}
	weights := []float64{1, 1, 2}
	const trials = 100000
	counts := make([]int, len(src))

	for i := 0; i < trials; i++ {
		idx := PickWeighted(c, src, weights)
		if idx < 0 || idx >= len(src) {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}
	checkFreq(t, "PickWeighted", counts, []float64{0.25, 0.25, 0.5}, trials, 0.01)
}

// TestPickWeightedByFallback 驗證全零權重時退回均勻分佈
// 檢查項目: extractor 全回傳 0 時行為與均勻選取一致（各 index 頻率 ~1/n）
func TestPickWeightedByFallback(t *testing.T) {
	c := newCore(41)
	src := []int{10, 20, 30, 40}
	const trials = 40000
	counts := make([]int, len(src))

	for i := 0; i < trials; i++ {
		idx := PickWeightedBy(c, src, func(int) float64 { return 0 })
		if idx < 0 || idx >= len(src) {
			t.Fatalf("index out of range: %d", idx)
		}
		counts[idx]++
	}
	checkFreq(t, "PickWeightedBy zero", counts, []float64{0.25, 0.25, 0.25, 0.25}, trials, 0.01)
}

// TestPickWeightedByExtractor 驗證 extractor 權重的經驗分佈
// 檢查項目: 以元素值為權重時頻率與值成正比
func TestPickWeightedByExtractor(t *testing.T) {
	c := newCore(43)
	src := []int{1, 3, 6} // 總權重 10
	const trials = 100000
	counts := make([]int, len(src))

	for i := 0; i < trials; i++ {
		counts[PickWeightedBy(c, src, func(v int) float64 { return float64(v) })]++
	}
	checkFreq(t, "PickWeightedBy", counts, []float64{0.1, 0.3, 0.6}, trials, 0.01)
}

// -----------------------------------------------------------------------------
// Tests for EraseIf / EraseIfRemove
// -----------------------------------------------------------------------------

// TestEraseIfStable 驗證壓實路徑的穩定刪除
// 檢查項目: [1..6] 刪偶數 → [1,3,5] 且順序不變
func TestEraseIfStable(t *testing.T) {
	s := []int{1, 2, 3, 4, 5, 6}
	got := EraseIf(s, func(v int) bool { return v%2 == 0 })
	if !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("expected [1 3 5], got %v", got)
	}
}

// TestEraseIfEdges 驗證全刪、全留與空輸入
func TestEraseIfEdges(t *testing.T) {
	if got := EraseIf([]int{2, 4}, func(v int) bool { return true }); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
	if got := EraseIf([]int{1, 3}, func(v int) bool { return false }); !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("expected [1 3], got %v", got)
	}
	if got := EraseIf([]int{}, func(v int) bool { return true }); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}

// intRemoveSeq 是測試用的最小 RemoveSeq 實作（逐位置移除路徑）
type intRemoveSeq struct {
	data []int
}

func (s *intRemoveSeq) Len() int     { return len(s.data) }
func (s *intRemoveSeq) At(i int) int { return s.data[i] }

func (s *intRemoveSeq) RemoveAt(i int) {
	s.data = append(s.data[:i], s.data[i+1:]...)
}

// TestEraseIfRemoveStable 驗證逐位置移除路徑與壓實路徑結果一致
// 檢查項目: 兩種策略對同一輸入產生完全相同的觀察結果
func TestEraseIfRemoveStable(t *testing.T) {
	rs := &intRemoveSeq{data: []int{1, 2, 3, 4, 5, 6}}
	EraseIfRemove[int](rs, func(v int) bool { return v%2 == 0 })
	if !slices.Equal(rs.data, []int{1, 3, 5}) {
		t.Fatalf("expected [1 3 5], got %v", rs.data)
	}

	// 連續命中（含頭尾）也必須正確處理
	rs = &intRemoveSeq{data: []int{2, 2, 1, 2, 2, 3, 2}}
	EraseIfRemove[int](rs, func(v int) bool { return v == 2 })
	if !slices.Equal(rs.data, []int{1, 3}) {
		t.Fatalf("expected [1 3], got %v", rs.data)
	}
}

// -----------------------------------------------------------------------------
// Tests for Multimap helpers
// -----------------------------------------------------------------------------

// TestMultimapErasePair 驗證配對刪除
// 檢查項目: {(k,v),(k,v),(k,w)} 刪 (k,v) → 恰好剩 {(k,w)}
func TestMultimapErasePair(t *testing.T) {
	m := map[string][]string{}
	MultimapInsert(m, "k", "v")
	MultimapInsert(m, "k", "v")
	MultimapInsert(m, "k", "w")
	MultimapInsert(m, "other", "v")

	MultimapErasePair(m, "k", "v")

	if !slices.Equal(m["k"], []string{"w"}) {
		t.Fatalf("expected [w] under k, got %v", m["k"])
	}
	if !slices.Equal(m["other"], []string{"v"}) {
		t.Fatalf("other key touched: %v", m["other"])
	}
}

// TestMultimapErasePairRemovesEmptyKey 驗證 bucket 清空時 key 一併刪除
func TestMultimapErasePairRemovesEmptyKey(t *testing.T) {
	m := map[int][]int{1: {7, 7}}
	MultimapErasePair(m, 1, 7)
	if _, ok := m[1]; ok {
		t.Fatalf("expected key 1 to be deleted, got %v", m)
	}
	// 不存在的 key 是 no-op
	MultimapErasePair(m, 9, 7)
}

// TestMultimapContains 驗證配對存在查詢
func TestMultimapContains(t *testing.T) {
	m := map[string][]int{"a": {1, 2}}
	if !MultimapContains(m, "a", 2) {
		t.Fatal("expected (a,2) to exist")
	}
	if MultimapContains(m, "a", 3) || MultimapContains(m, "b", 1) {
		t.Fatal("unexpected pair reported as existing")
	}
}

// -----------------------------------------------------------------------------
// Tests for Shuffle
// -----------------------------------------------------------------------------

// TestShuffleKeepsElements 驗證洗牌後元素集合不變
func TestShuffleKeepsElements(t *testing.T) {
	c := newCoreRandomSeed()
	src := []int{1, 2, 3, 4, 5}
	want := slices.Clone(src)

	Shuffle(c, src)

	got := slices.Clone(src)
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Fatalf("shuffle altered elements: %v", src)
	}
}

// TestDeterministicReplay 驗證固定 seed 下整條決策序列可重現
// 檢查項目: 相同 seed 的兩個 Core 對同一串操作產生逐位元相同的結果
func TestDeterministicReplay(t *testing.T) {
	run := func(seed int64) ([]int, int, int) {
		c := newCore(seed)
		resized := RandomResize(c, []int{0, 1, 2, 3, 4, 5, 6, 7}, 3)
		picked := Pick(c, []int{10, 20, 30})
		weighted := PickWeighted(c, []int{0, 1, 2}, []float64{1, 2, 3})
		return resized, picked, weighted
	}

	r1, p1, w1 := run(99)
	r2, p2, w2 := run(99)
	if !slices.Equal(r1, r2) || p1 != p2 || w1 != w2 {
		t.Fatalf("same seed produced different decisions: %v/%d/%d vs %v/%d/%d",
			r1, p1, w1, r2, p2, w2)
	}
}
