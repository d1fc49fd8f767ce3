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

// EraseIf 以穩定順序移除所有 drop 為 true 的元素，回傳縮短後的 slice。
//
// 演算法：雙游標壓實
//
//	讀游標掃過全部元素；不該刪的元素以交換搬進寫游標位置後寫游標前進。
//	用交換而非賦值搬移，讓被讓出的槽位仍持有舊值而不殘留重複引用，
//	存活者保持原本相對順序。
//
// 複雜度：
//   - 時間：O(N)，恰好一趟，無逐元素 erase 呼叫
//   - 空間：O(1)
//
// 回傳值慣例同 slices.DeleteFunc：重用底層陣列，呼叫端以回傳值覆蓋原變數。
// 尾端 [len(result), len(s)) 的內容為交換殘留，不應再被讀取。
func EraseIf[T any](s []T, drop func(T) bool) []T {
	w := 0
	for r := range s {
		if !drop(s[r]) {
			if r != w {
				s[r], s[w] = s[w], s[r]
			}
			w++
		}
	}
	return s[:w]
}

// RemoveSeq 是 EraseIfRemove 所需的最小容器能力：長度、按位取值、按位移除。
//
// 這讓穩定刪除可以作用在非 slice 的序列容器上（鏈結串列、gap buffer、
// 自訂環狀結構...），由容器自己的 RemoveAt 決定移除成本。
type RemoveSeq[T any] interface {
	// Len 回傳目前元素數。
	Len() int
	// At 回傳位置 i 的元素，i 範圍由呼叫端保證。
	At(i int) T
	// RemoveAt 移除位置 i 的元素，後續元素前移一位。
	RemoveAt(i int)
}

// EraseIfRemove 是 EraseIf 的逐位置移除版本，作用於實作 RemoveSeq 的容器。
//
// 命中即在原位置 RemoveAt，未命中才前進——與 EraseIf 的觀察結果完全相同
// （穩定、同一組存活者），差別只在成本：總時間由容器的單點移除成本主導，
// 可能劣於壓實策略。此路徑存在的目的是支援不適合整批搬移的容器，
// 是效能分岔而非正確性分岔。
func EraseIfRemove[T any](s RemoveSeq[T], drop func(T) bool) {
	for i := 0; i < s.Len(); {
		if drop(s.At(i)) {
			s.RemoveAt(i)
		} else {
			i++
		}
	}
}
