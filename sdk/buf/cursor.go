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

// Package buf 提供固定容量緩衝區上的安全寫入游標。
//
// 定位：把「固定大小緩衝區 + 手動指標運算」的舊式 API 接到
// 「一次寫一個元素」的產生器上，同時把潛在的記憶體越界改寫成
// 可偵測、可回傳的錯誤。
package buf

import "github.com/zintix-labs/seqlab/errs"

// ErrOverflow 在寫入超出緩衝區容量的那一刻回傳。
// 用 errors.Is(err, buf.ErrOverflow) 判別。
var ErrOverflow = errs.NewWarn("buf: write past end of buffer")

// Cursor 是外部持有之固定緩衝區上的 write-only 游標。
//
//   - 不擁有記憶體：只是 caller 提供之 []T 窗口上的游標，永不配置、永不擴容。
//   - 每次寫入當下檢查剩餘容量；滿了之後的那一次寫入回傳 ErrOverflow，
//     不提早失敗、更不無聲越界。
//   - 非併發安全，與其它套件相同由呼叫端保證獨占。
type Cursor[T any] struct {
	dst []T
	n   int // 已寫入元素數
}

// NewCursor 將 caller 擁有的緩衝區包成游標。容量即 len(dst)，之後不變。
func NewCursor[T any](dst []T) *Cursor[T] {
	return &Cursor[T]{dst: dst}
}

// Put 寫入一個元素。
// 游標已達緩衝區尾端時回傳 ErrOverflow，緩衝區內容保持不變。
func (c *Cursor[T]) Put(v T) error {
	if c.n >= len(c.dst) {
		return ErrOverflow
	}
	c.dst[c.n] = v
	c.n++
	return nil
}

// Remaining 回傳還可寫入的元素數，協作端可用它避免觸發 ErrOverflow。
func (c *Cursor[T]) Remaining() int {
	return len(c.dst) - c.n
}

// Len 回傳已寫入的元素數。
func (c *Cursor[T]) Len() int {
	return c.n
}

// Written 回傳已寫入前綴的視圖（與底層緩衝區共享記憶體，請勿在繼續寫入後保留）。
func (c *Cursor[T]) Written() []T {
	return c.dst[:c.n]
}
