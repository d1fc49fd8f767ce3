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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"strings"
	"testing"
)

// TestFreqIgnoresSentinel 驗證計數器忽略哨兵與越界輸入
func TestFreqIgnoresSentinel(t *testing.T) {
	f := NewFreq(3)
	f.Observe(0)
	f.Observe(2)
	f.Observe(-1)
	f.Observe(3)

	if f.Total() != 2 {
		t.Fatalf("expected total 2, got %d", f.Total())
	}
	if !slices.Equal(f.Counts(), []int{1, 0, 1}) {
		t.Fatalf("unexpected counts: %v", f.Counts())
	}
}

// TestSubsetFreqSorted 驗證子集合計數與穩定排序輸出
func TestSubsetFreqSorted(t *testing.T) {
	s := NewSubsetFreq()
	s.Observe([]int{0, 2})
	s.Observe([]int{0, 1})
	s.Observe([]int{0, 2})

	if s.Categories() != 2 || s.Total() != 3 {
		t.Fatalf("categories=%d total=%d", s.Categories(), s.Total())
	}
	keys, counts := s.Sorted()
	if !slices.Equal(keys, []string{"0,1", "0,2"}) || !slices.Equal(counts, []int{1, 2}) {
		t.Fatalf("unexpected sorted output: %v %v", keys, counts)
	}
}

// TestChiSquareExactFit 驗證觀測恰等於期望時 stat = 0、p = 1
func TestChiSquareExactFit(t *testing.T) {
	stat, p, err := ChiSquare([]int{50, 50}, []float64{50, 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat != 0 {
		t.Fatalf("expected stat 0, got %v", stat)
	}
	if math.Abs(p-1) > 1e-12 {
		t.Fatalf("expected p ~1, got %v", p)
	}
}

// TestChiSquareKnownValue 驗證已知手算案例
// 檢查項目: observed [60,40] vs expected [50,50] → stat = 4, p = P(X²₁ > 4) ≈ 0.0455
func TestChiSquareKnownValue(t *testing.T) {
	stat, p, err := ChiSquare([]int{60, 40}, []float64{50, 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(stat-4) > 1e-12 {
		t.Fatalf("expected stat 4, got %v", stat)
	}
	if math.Abs(p-0.0455) > 0.001 {
		t.Fatalf("expected p ~0.0455, got %v", p)
	}
}

// TestChiSquareErrors 驗證輸入檢查
func TestChiSquareErrors(t *testing.T) {
	if _, _, err := ChiSquare([]int{1}, []float64{1, 2}); err == nil {
		t.Fatal("expected length mismatch error")
	}
	if _, _, err := ChiSquare([]int{1, 2}, []float64{1, 0}); err == nil {
		t.Fatal("expected non-positive expected error")
	}
	if _, _, err := ChiSquareUniform([]int{0, 0}); err == nil {
		t.Fatal("expected no-observations error")
	}
}

// TestChiSquareWeights 驗證加權虛無假設與零權重類別處理
func TestChiSquareWeights(t *testing.T) {
	// 完全擬合: 觀測比例 1:1:2
	stat, _, err := ChiSquareWeights([]int{25, 25, 50}, []float64{1, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stat != 0 {
		t.Fatalf("expected stat 0, got %v", stat)
	}

	// 零權重類別出現觀測 → 直接回報錯誤
	if _, _, err := ChiSquareWeights([]int{10, 1}, []float64{1, 0}); err == nil {
		t.Fatal("expected zero-weight category error")
	}

	// 零權重類別無觀測 → 從卡方中剔除後照常檢定
	if _, _, err := ChiSquareWeights([]int{50, 0, 50}, []float64{1, 0, 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestReportRenders 驗證 JSON/YAML/表格三種渲染不失敗且帶關鍵欄位
func TestReportRenders(t *testing.T) {
	r := &Report{
		Name:      "demo",
		Kind:      "weighted",
		Trials:    1000,
		Seed:      7,
		ChiSquare: 1.5,
		PValue:    0.68,
		Alpha:     0.01,
		Pass:      true,
		Categories: []Category{
			{Label: "0", Observed: 240, Expected: 250},
			{Label: "1", Observed: 760, Expected: 750},
		},
	}

	var jbuf bytes.Buffer
	if err := (&JsonReportRender{}).Write(&jbuf, r); err != nil {
		t.Fatalf("json render: %v", err)
	}
	var back Report
	if err := json.Unmarshal(jbuf.Bytes(), &back); err != nil {
		t.Fatalf("json round trip: %v", err)
	}
	if back.Kind != "weighted" || len(back.Categories) != 2 {
		t.Fatalf("lost fields in json: %+v", back)
	}

	var ybuf bytes.Buffer
	if err := (&YAMLReportRender{}).Write(&ybuf, r); err != nil {
		t.Fatalf("yaml render: %v", err)
	}
	if !strings.Contains(ybuf.String(), "kind: weighted") {
		t.Fatalf("yaml output missing kind: %s", ybuf.String())
	}

	table := r.String()
	for _, want := range []string{"demo", "ChiSquare", "P-Value", "Pass"} {
		if !strings.Contains(table, want) {
			t.Fatalf("table missing %q:\n%s", want, table)
		}
	}
}
