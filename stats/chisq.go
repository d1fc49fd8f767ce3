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
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/zintix-labs/seqlab/errs"
)

// ChiSquare 對觀測計數做 Pearson 卡方適合度檢定。
//
//	stat = Σ (observed_i - expected_i)^2 / expected_i
//
// expected 為各類別的期望「計數」（不是機率），每一項必須 > 0；
// p-value 取自自由度 len-1 的卡方分佈右尾（distuv.ChiSquared.Survival）。
//
// 經驗法則：期望計數低於 5 的類別會讓卡方近似失真，呼叫端應拉高試驗次數，
// 本函數不替呼叫端合併類別。
func ChiSquare(observed []int, expected []float64) (stat, p float64, err error) {
	if len(observed) != len(expected) {
		return 0, 0, errs.Warnf("chisquare: length mismatch %d vs %d", len(observed), len(expected))
	}
	if len(observed) < 2 {
		return 0, 0, errs.NewWarn("chisquare: need at least 2 categories")
	}

	for i, e := range expected {
		if e <= 0 {
			return 0, 0, errs.Warnf("chisquare: non-positive expected count at %d", i)
		}
		d := float64(observed[i]) - e
		stat += d * d / e
	}

	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	return stat, dist.Survival(stat), nil
}

// ChiSquareUniform 以「全類別等機率」的虛無假設做卡方檢定。
func ChiSquareUniform(observed []int) (stat, p float64, err error) {
	total := 0
	for _, o := range observed {
		total += o
	}
	if total == 0 {
		return 0, 0, errs.NewWarn("chisquare: no observations")
	}

	expected := make([]float64, len(observed))
	e := float64(total) / float64(len(observed))
	for i := range expected {
		expected[i] = e
	}
	return ChiSquare(observed, expected)
}

// ChiSquareWeights 以權重比例作為虛無假設做卡方檢定。
// 權重總和必須為正；零權重類別要求觀測數為 0（否則直接回報不可能擬合）。
func ChiSquareWeights(observed []int, weights []float64) (stat, p float64, err error) {
	if len(observed) != len(weights) {
		return 0, 0, errs.Warnf("chisquare: length mismatch %d vs %d", len(observed), len(weights))
	}

	totalW := 0.0
	for _, w := range weights {
		totalW += w
	}
	if totalW <= 0 {
		return 0, 0, errs.NewWarn("chisquare: non-positive weight sum")
	}

	totalO := 0
	for _, o := range observed {
		totalO += o
	}

	// 零權重類別不進入卡方（期望恰為 0）；出現任何觀測即為失敗
	obs := make([]int, 0, len(observed))
	exp := make([]float64, 0, len(observed))
	for i, w := range weights {
		if w <= 0 {
			if observed[i] != 0 {
				return 0, 0, errs.Warnf("chisquare: observations in zero-weight category %d", i)
			}
			continue
		}
		obs = append(obs, observed[i])
		exp = append(exp, float64(totalO)*w/totalW)
	}
	return ChiSquare(obs, exp)
}
