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

// Go 的多值映射以 map[K][]V 表示：同一個 key 下可掛多個（可重複的）value。

// MultimapInsert 在 key 下追加一個 value。
func MultimapInsert[K comparable, V comparable](m map[K][]V, key K, val V) {
	m[key] = append(m[key], val)
}

// MultimapContains 回報 (key, val) 配對是否存在。
func MultimapContains[K comparable, V comparable](m map[K][]V, key K, val V) bool {
	for _, v := range m[key] {
		if v == val {
			return true
		}
	}
	return false
}

// MultimapErasePair 移除映射中所有恰好等於 (key, val) 的配對。
//
// 同 key 下的其他 value 與其他 key 完全不受影響；bucket 內存活者
// 保持原本相對順序（內部走 EraseIf 壓實）。bucket 清空時連同 key 一併
// 刪除，映射中不殘留空項目。
//
// 複雜度：O(同 key 下的配對數)。
func MultimapErasePair[K comparable, V comparable](m map[K][]V, key K, val V) {
	bucket, ok := m[key]
	if !ok {
		return
	}
	bucket = EraseIf(bucket, func(v V) bool { return v == val })
	if len(bucket) == 0 {
		delete(m, key)
		return
	}
	m[key] = bucket
}
