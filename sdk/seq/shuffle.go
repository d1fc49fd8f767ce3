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

// Shuffle 使用 Fisher-Yates (Knuth Shuffle) 對序列做就地隨機重排。
//
// 演算法特性：
//
//  1. 公平性 (Unbiased)：
//     所有 N! 種排列出現的機率嚴格相等 (1/N!)，避免 naive shuffle
//     （每個位置跟任意位置交換）造成的機率偏差。
//
//  2. 效能：
//     - 時間複雜度：O(N)，單趟線性掃描。
//     - 空間複雜度：O(1)，原地交換，零配置。
func Shuffle[T any](c *core.Core, s []T) {
	if len(s) <= 1 {
		return
	}
	for i := len(s) - 1; i > 0; i-- {
		j := c.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
