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

// Package seqlab 是隨機序列演算法的驗證實驗台。
//
// sdk/seq 提供演算法本體；本套件把「跑大量試驗、統計輸出分佈、
// 卡方檢定理論分佈」包成可宣告（YAML）、可重現（固定 seed）的 Experiment。
package seqlab

import (
	"io"
	"strconv"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/zintix-labs/seqlab/corefmt"
	"github.com/zintix-labs/seqlab/errs"
	"github.com/zintix-labs/seqlab/sdk/buf"
	"github.com/zintix-labs/seqlab/sdk/core"
	"github.com/zintix-labs/seqlab/sdk/seq"
	"github.com/zintix-labs/seqlab/stats"
)

// 實驗種類。每種對應 sdk/seq 的一個操作與它的理論分佈。
const (
	KindPick       = "pick"        // seq.Pick：各 index 等機率
	KindPickIf     = "pick-if"     // seq.PickIndexIf：偶數 index 之間等機率
	KindWeighted   = "weighted"    // seq.PickWeighted：頻率正比於 Weights
	KindWeightedBy = "weighted-by" // seq.PickWeightedBy：Weights 為空時觸發均勻退回
	KindResize     = "resize"      // seq.RandomResize：C(N,K) 子集合等機率
	KindResizeIf   = "resize-if"   // seq.RandomResizeIf：偶數元素的 C(m,K) 子集合等機率
)

// Kinds 列出所有實驗種類（給 API meta / CLI usage 用）。
func Kinds() []string {
	return []string{KindPick, KindPickIf, KindWeighted, KindWeightedBy, KindResize, KindResizeIf}
}

const (
	defaultAlpha = 0.001
	maxSubsets   = 4096 // resize 類實驗的 C(N,K) 上限，避免類別爆炸
	maxReportCat = 256  // 超過此類別數的報表省略逐類別明細
)

// Experiment 描述一次可重現的分佈驗證實驗。
//
// 元素一律取 [0, N) 的 index 序列，讓觀測值可以直接當類別計數。
// 固定 Seed + 固定參數 → 固定的 Report（Elapsed 除外）。
type Experiment struct {
	Name    string    `yaml:"name" json:"name"`
	Kind    string    `yaml:"kind" json:"kind"`
	N       int       `yaml:"n" json:"n"`
	K       int       `yaml:"k,omitempty" json:"k,omitempty"`
	Weights []float64 `yaml:"weights,omitempty" json:"weights,omitempty"`
	Trials  int       `yaml:"trials" json:"trials"`
	Seed    int64     `yaml:"seed" json:"seed"`
	Alpha   float64   `yaml:"alpha,omitempty" json:"alpha,omitempty"`
}

// Validate 檢查實驗參數。這裡是宣告邊界（YAML/HTTP 輸入），
// 與 sdk/seq 的「不檢查合約」分工：髒輸入在這層擋下。
func (e *Experiment) Validate() error {
	if e.Trials < 1 {
		return errs.NewWarn("experiment: trials must be >= 1")
	}
	if e.N < 1 {
		return errs.NewWarn("experiment: n must be >= 1")
	}
	if e.Alpha < 0 || e.Alpha >= 1 {
		return errs.NewWarn("experiment: alpha must be in [0, 1)")
	}

	switch e.Kind {
	case KindPick:
		if e.N < 2 {
			return errs.NewWarn("experiment: pick needs n >= 2")
		}
	case KindPickIf:
		if e.N < 4 {
			return errs.NewWarn("experiment: pick-if needs n >= 4")
		}
	case KindWeighted:
		if len(e.Weights) != e.N {
			return errs.Warnf("experiment: weighted needs len(weights) == n (%d != %d)", len(e.Weights), e.N)
		}
		total := 0.0
		for _, w := range e.Weights {
			if w < 0 {
				return errs.NewWarn("experiment: negative weight")
			}
			total += w
		}
		if total <= 0 {
			return errs.NewWarn("experiment: weight sum must be positive")
		}
	case KindWeightedBy:
		if len(e.Weights) != 0 && len(e.Weights) != e.N {
			return errs.NewWarn("experiment: weighted-by weights must be empty or length n")
		}
	case KindResize, KindResizeIf:
		m := e.N
		if e.Kind == KindResizeIf {
			m = (e.N + 1) / 2 // 偶數 index 個數
		}
		if e.K < 1 || e.K >= m {
			return errs.Warnf("experiment: resize needs 0 < k < %d", m)
		}
		cats := binomial(m, e.K)
		if cats < 0 || cats > maxSubsets {
			return errs.Warnf("experiment: C(%d,%d) exceeds subset limit %d", m, e.K, maxSubsets)
		}
	default:
		return errs.Warnf("experiment: unknown kind %q", e.Kind)
	}
	return nil
}

// Run 執行實驗並回傳統計報表。
// showpb 控制是否顯示進度條（批次/測試時關閉）。
func (e *Experiment) Run(showpb bool) (*stats.Report, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	alpha := e.Alpha
	if alpha == 0 {
		alpha = defaultAlpha
	}

	rng := core.Default().New(e.Seed)
	c := core.New(rng)

	bar := pb.StartNew(e.Trials)
	if !showpb {
		bar.SetWriter(io.Discard)
	}

	var (
		labels   []string
		observed []int
		expected []float64
		err      error
	)
	switch e.Kind {
	case KindPick, KindPickIf, KindWeighted, KindWeightedBy:
		labels, observed, expected, err = e.runIndexed(c, bar)
	case KindResize, KindResizeIf:
		labels, observed, expected, err = e.runSubsets(c, bar)
	}
	bar.Finish()
	if err != nil {
		return nil, err
	}

	stat, p, err := stats.ChiSquare(observed, expected)
	if err != nil {
		return nil, errs.Wrap(err, "experiment: goodness-of-fit failed")
	}

	r := &stats.Report{
		Name:      e.Name,
		Kind:      e.Kind,
		Trials:    e.Trials,
		Seed:      e.Seed,
		ChiSquare: stat,
		PValue:    p,
		Alpha:     alpha,
		Pass:      p >= alpha,
		Elapsed:   time.Since(bar.StartTime()),
	}
	if len(labels) <= maxReportCat {
		r.Categories = make([]stats.Category, len(labels))
		for i, l := range labels {
			r.Categories[i] = stats.Category{Label: l, Observed: observed[i], Expected: expected[i]}
		}
	}
	if snap, serr := rng.Snapshot(); serr == nil {
		r.RngState = corefmt.EncodeBase64(snap)
	}
	return r, nil
}

// runIndexed 處理輸出為單一 index 的實驗種類。
func (e *Experiment) runIndexed(c *core.Core, bar *pb.ProgressBar) ([]string, []int, []float64, error) {
	src := indexSeq(e.N)
	freq := stats.NewFreq(e.N)

	for i := 0; i < e.Trials; i++ {
		switch e.Kind {
		case KindPick:
			freq.Observe(seq.Pick(c, src))
		case KindPickIf:
			freq.Observe(seq.PickIndexIf(c, src, isEven))
		case KindWeighted:
			freq.Observe(seq.PickWeighted(c, src, e.Weights))
		case KindWeightedBy:
			freq.Observe(seq.PickWeightedBy(c, src, e.extractor()))
		}
		bar.Increment()
	}

	weights := e.nullWeights()
	// 只保留正權重類別進卡方；零權重類別若有觀測，ChiSquareWeights 會回報
	labels := make([]string, 0, e.N)
	obs := make([]int, 0, e.N)
	exp := make([]float64, 0, e.N)
	totalW := 0.0
	for _, w := range weights {
		totalW += w
	}
	for i, w := range weights {
		if w <= 0 {
			if freq.Counts()[i] != 0 {
				return nil, nil, nil, errs.Warnf("experiment: zero-weight index %d was selected", i)
			}
			continue
		}
		labels = append(labels, strconv.Itoa(i))
		obs = append(obs, freq.Counts()[i])
		exp = append(exp, float64(e.Trials)*w/totalW)
	}
	return labels, obs, exp, nil
}

// runSubsets 處理輸出為 k-子集合的實驗種類。
func (e *Experiment) runSubsets(c *core.Core, bar *pb.ProgressBar) ([]string, []int, []float64, error) {
	subsets := stats.NewSubsetFreq()

	// RandomResize 會就地打亂母體，所以每回合用游標重填 scratch，
	// 不必每回合重新配置。
	scratch := make([]int, e.N)
	for i := 0; i < e.Trials; i++ {
		cur := buf.NewCursor(scratch)
		for v := 0; v < e.N; v++ {
			if err := cur.Put(v); err != nil {
				return nil, nil, nil, errs.Wrap(err, "experiment: refill population")
			}
		}

		var kept []int
		if e.Kind == KindResize {
			kept = seq.RandomResize(c, scratch, e.K)
		} else {
			kept = seq.RandomResizeIf(c, scratch, isEven, e.K)
		}
		subsets.Observe(kept)
		bar.Increment()
	}

	m := e.N
	if e.Kind == KindResizeIf {
		m = (e.N + 1) / 2
	}
	cats := binomial(m, e.K)

	labels, obs := subsets.Sorted()
	// 沒出現過的子集合也要以 0 觀測進卡方，否則檢定失真
	if miss := cats - len(labels); miss > 0 {
		for i := 0; i < miss; i++ {
			labels = append(labels, "(unseen)")
			obs = append(obs, 0)
		}
	} else if miss < 0 {
		return nil, nil, nil, errs.Warnf("experiment: %d subsets observed, theory allows %d", len(labels), cats)
	}

	exp := make([]float64, len(obs))
	for i := range exp {
		exp[i] = float64(e.Trials) / float64(cats)
	}
	return labels, obs, exp, nil
}

// extractor 回傳 weighted-by 的權重函數；Weights 為空時回傳零權重函數，
// 刻意觸發 PickWeightedBy 的均勻退回路徑。
func (e *Experiment) extractor() func(int) float64 {
	if len(e.Weights) == 0 {
		return func(int) float64 { return 0 }
	}
	w := e.Weights
	return func(v int) float64 { return w[v] }
}

// nullWeights 回傳虛無假設下各 index 的理論權重。
func (e *Experiment) nullWeights() []float64 {
	w := make([]float64, e.N)
	switch e.Kind {
	case KindPick:
		for i := range w {
			w[i] = 1
		}
	case KindPickIf:
		for i := range w {
			if isEven(i) {
				w[i] = 1
			}
		}
	case KindWeighted:
		copy(w, e.Weights)
	case KindWeightedBy:
		if len(e.Weights) == 0 {
			for i := range w {
				w[i] = 1 // 全零 extractor → 均勻退回
			}
		} else {
			copy(w, e.Weights)
			total := 0.0
			for _, v := range w {
				total += v
			}
			if total <= 0 {
				for i := range w {
					w[i] = 1
				}
			}
		}
	}
	return w
}

func indexSeq(n int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = i
	}
	return s
}

func isEven(v int) bool { return v%2 == 0 }

// binomial 回傳 C(n,k)；溢位時回傳 -1。
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 1; i <= k; i++ {
		if r > (1<<62)/(n-k+i) {
			return -1
		}
		r = r * (n - k + i) / i
	}
	return r
}
