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

import "github.com/zintix-labs/seqlab/sdk/core"

// PickWeighted 依照外部提供的權重向量，選出一個 index（機率與權重成正比）。
//
// 合約（不檢查）：
//   - len(weights) == len(s)，位置一一對應。
//   - 權重非負且總和嚴格為正。
//
// 違反合約時行為未定義（目前實作會透傳 core.WeightedIndex 的 -1 哨兵，
// 但呼叫端不應依賴這點）。
func PickWeighted[T any](c *core.Core, s []T, weights []float64) int {
	_ = s // 權重與序列位置對齊，抽樣只需要權重本身
	return c.WeightedIndex(weights)
}

// PickWeightedBy 以 weightOf 對每個元素取權重後做加權選取，回傳 index。
//
// 流程：
//  1. 逐元素呼叫 weightOf 建立權重向量並累計總和。
//  2. 總和 <= 0 時（全零或負權重）以均勻權重（全 1）替代，保證仍是
//     合法分佈——這是整個套件唯一的防禦性檢查，專門避免退化的
//     全零權重抽樣；此時行為與 Pick 等價。
//  3. 其餘情況委派給 PickWeighted。
//
// 合約：序列非空；weightOf 必須是純函數且回傳非負值（可為 0）。
func PickWeightedBy[T any](c *core.Core, s []T, weightOf func(T) float64) int {
	weights := make([]float64, len(s))
	total := 0.0
	for i, v := range s {
		w := weightOf(v)
		weights[i] = w
		total += w
	}

	if total <= 0 {
		for i := range weights {
			weights[i] = 1
		}
	}

	return PickWeighted(c, s, weights)
}
