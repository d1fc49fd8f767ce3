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

// Pick 從序列中等機率選取一個元素（每個元素機率恰為 1/n）。
//
// 合約：序列非空。對空序列呼叫屬合約違反，會直接以越界索引 panic，
// 不做防禦檢查也不回復——這是本套件「信任呼叫端」的效能取向。
func Pick[T any](c *core.Core, s []T) T {
	return s[c.UniformInt(0, len(s)-1)]
}

// PickIndexIf 從符合 match 的元素中等機率選取一個，回傳其 index。
//
// 單趟掃描收集所有命中位置後再抽樣（配置量與命中數成正比）。
// 無命中時回傳 -1 哨兵；輸入序列允許為空（回傳 -1，不是錯誤）。
//
// 與 RandomResize 不同，這裡不用單趟 reservoir 技巧——命中數通常遠小於 n，
// 先物化再抽的成本可接受；這是可優化點而非正確性問題。
func PickIndexIf[T any](c *core.Core, s []T, match func(T) bool) int {
	var hits []int
	for i, v := range s {
		if match(v) {
			hits = append(hits, i)
		}
	}
	if len(hits) == 0 {
		return -1
	}
	return hits[c.UniformInt(0, len(hits)-1)]
}

// PickIf 是 PickIndexIf 的取值版本：回傳選中的元素與是否命中。
func PickIf[T any](c *core.Core, s []T, match func(T) bool) (T, bool) {
	idx := PickIndexIf(c, s, match)
	if idx < 0 {
		var zero T
		return zero, false
	}
	return s[idx], true
}
