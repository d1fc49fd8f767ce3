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
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var lang language.Tag = language.English

// Category 是報表中的單一類別：標籤、觀測計數、期望計數。
type Category struct {
	Label    string  `json:"Label" yaml:"label"`
	Observed int     `json:"Observed" yaml:"observed"`
	Expected float64 `json:"Expected" yaml:"expected"`
}

// Report 是一次實驗（固定 seed、固定試驗次數）的分佈驗證結果。
type Report struct {
	Name   string `json:"Name" yaml:"name"`
	Kind   string `json:"Kind" yaml:"kind"`
	Trials int    `json:"Trials" yaml:"trials"`
	Seed   int64  `json:"Seed" yaml:"seed"`

	Categories []Category `json:"Categories,omitempty" yaml:"categories,omitempty"`

	ChiSquare float64 `json:"ChiSquare" yaml:"chisquare"`
	PValue    float64 `json:"PValue" yaml:"pvalue"`
	Alpha     float64 `json:"Alpha" yaml:"alpha"`
	Pass      bool    `json:"Pass" yaml:"pass"`

	Elapsed time.Duration `json:"Elapsed" yaml:"elapsed"`

	// RngState 為實驗結束後 PRNG 的 Base64 快照，供審計/續跑。
	RngState string `json:"RngState,omitempty" yaml:"rngstate,omitempty"`
}

// StdOut

// String 以表格輸出報表摘要（類別數多時只列前若干筆）。
func (r *Report) String() string {
	p := message.NewPrinter(lang)
	msg := map[string]string{
		"Kind":       r.Kind,
		"Trials":     p.Sprintf("%d", r.Trials),
		"Seed":       fmt.Sprintf("%d", r.Seed),
		"Categories": p.Sprintf("%d", len(r.Categories)),
		"ChiSquare":  p.Sprintf("%.4f", r.ChiSquare),
		"P-Value":    p.Sprintf("%.4f", r.PValue),
		"Alpha":      p.Sprintf("%.3f", r.Alpha),
		"Pass":       fmt.Sprintf("%v", r.Pass),
		"Elapsed":    r.Elapsed.Round(time.Millisecond).String(),
	}
	keys := []string{"Kind", "Trials", "Seed", "Categories", "ChiSquare", "P-Value", "Alpha", "Pass", "Elapsed"}
	return fmtTable(r.Name, keys, msg)
}

// fmtTable 以 runewidth 對齊 key/value 欄寬，輸出 ASCII 表格。
func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := 0
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	if w := runewidth.StringWidth(title); w > maxKeyLen+maxValLen+1 {
		maxValLen = w - maxKeyLen - 1
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)

	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	fmtStr := top
	fmtStr += p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right))
	fmtStr += divider
	for _, k := range keys {
		fmtStr += p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k])))
	}
	fmtStr += divider

	return fmtStr
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
