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

// Package seq 提供對任意元素型別序列的隨機選取、隨機縮減、加權抽樣、
// 穩定刪除與多值映射刪除演算法。
//
// 設計約定：
//   - 所有隨機化操作都以 *core.Core 作為明確參數，固定 seed 即可重現整個決策序列。
//   - 會縮短序列的函數沿用 slices.DeleteFunc 慣例：回傳縮短後的 slice，
//     重用原本的底層陣列；呼叫端應以回傳值覆蓋原變數。
//   - 效能優先、信任呼叫端：前置條件（非空序列、權重長度對齊、權重總和為正）
//     不在執行期檢查，違反屬於合約違反而非可恢復錯誤。
package seq

import "github.com/zintix-labs/seqlab/sdk/core"

// RandomResize 將序列隨機縮減到至多 k 個元素。
//
// 演算法：單趟選擇抽樣 (Selection Sampling, Knuth TAOCP Vol.2 3.4.2 Algorithm S)
//
// 核心邏輯：
//  1. 若 len(s) <= k，不做事，原樣回傳。
//  2. 否則由左至右掃描一次，維護 remainKeep = k、remainProc = len(s)。
//     每個元素抽 UniformInt(1, remainProc)，抽中 <= remainKeep 即保留
//     （remainKeep--），無論去留 remainProc 都遞減。
//  3. 保留者依原本相對順序壓實到序列前端（交換搬移，不複製），尾端裁掉。
//
// 機率保證：所有 C(n,k) 種 k-子集合被保留的機率嚴格相等，
// 且存活元素保持原本相對順序。
//
// 複雜度：
//   - 時間：O(N)，單趟掃描
//   - 空間：O(1)，無輔助配置
//
// k <= 0 時回傳空序列（s[:0]）。
func RandomResize[T any](c *core.Core, s []T, k int) []T {
	if k < 0 {
		k = 0
	}
	if len(s) <= k {
		return s
	}

	w := 0 // 保留者的壓實寫入位置
	remainKeep, remainProc := k, len(s)
	for r := 0; remainProc > 0; r++ {
		// 此元素被保留的機率為 remainKeep / remainProc
		if c.UniformInt(1, remainProc) <= remainKeep {
			if w != r {
				s[w], s[r] = s[r], s[w]
			}
			w++
			remainKeep--
		}
		remainProc--
	}

	return s[:k]
}

// RandomResizeIf 先以 keep 過濾序列，再隨機縮減到至多 k 個元素。
//
// 流程：
//  1. 建立新序列，依原本順序收集 keep 為 true 的元素（唯一會配置的步驟）。
//  2. k != 0 時對過濾結果套用 RandomResize。
//
// 注意 k == 0 的語意是「不設上限」而不是「縮減到 0」——把 uncapped 與
// cap-to-zero 摺疊進同一個數值域是刻意的慣例。需要「保證空結果」
// 的呼叫端必須自行特判，不能傳 0。
func RandomResizeIf[T any](c *core.Core, s []T, keep func(T) bool, k int) []T {
	filtered := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			filtered = append(filtered, v)
		}
	}

	if k != 0 {
		return RandomResize(c, filtered, k)
	}
	return filtered
}
