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

package v1

import (
	"crypto/rand"
	"encoding/json"
	"io"
	"math"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zintix-labs/seqlab"
	"github.com/zintix-labs/seqlab/errs"
	"github.com/zintix-labs/seqlab/server/httperr"
	"github.com/zintix-labs/seqlab/server/svrcfg"
	"github.com/zintix-labs/seqlab/stats"
)

type ExpHandler struct {
	Cfg *svrcfg.SvrCfg
}

func NewExpHandler(sCfg *svrcfg.SvrCfg) (*ExpHandler, error) {
	if sCfg == nil {
		return nil, errs.NewFatal("svr config is required")
	}
	return &ExpHandler{Cfg: sCfg}, nil
}

// Run 執行單一實驗並回傳報表。
//
// GET  /v1/experiment?kind=pick&n=6&trials=60000[&k=][&seed=][&alpha=][&weights=1,1,2]
// POST /v1/experiment  body 為 Experiment JSON（seed 省略時由 server 產生）。
func (eh *ExpHandler) Run(w http.ResponseWriter, q *http.Request) {
	// 內部結構 不影響外部 也不被外部使用
	type ExpResponse struct {
		Report   *stats.Report `json:"report"`
		UsedTime int64         `json:"used_ms"`
	}
	// ---
	if q.Method != http.MethodGet && q.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var (
		exp     *seqlab.Experiment
		hasSeed bool
		err     error
	)
	if q.Method == http.MethodGet {
		exp, hasSeed, err = expByQuery(q)
	} else {
		exp, hasSeed, err = expByBody(q.Body)
	}
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 業務檢驗
	if exp.Trials > eh.Cfg.MaxTrials {
		httperr.Errs(w, errs.Warnf("trials must be between 1 to %d", eh.Cfg.MaxTrials))
		return
	}
	if !hasSeed {
		rnd, rerr := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if rerr != nil {
			httperr.Errs(w, errs.NewWarn("seed generate failed"))
			return
		}
		exp.Seed = rnd.Int64()
	}

	start := time.Now()
	report, err := exp.Run(false)
	if err != nil {
		// 這裡的錯誤來自實驗本體 尊重錯誤分級
		httperr.Errs(w, errs.Wrap(err, "run experiment err"))
		httperr.Log(eh.Cfg.Log, "run experiment err", err)
		return
	}

	resp := ExpResponse{
		Report:   report,
		UsedTime: time.Since(start).Milliseconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Ping 健康檢查。
func Ping(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func expByBody(body io.Reader) (*seqlab.Experiment, bool, error) {
	// 用 RawMessage 偵測 seed 是否真的有出現在 body 裡（0 也是合法 seed）。
	type probe struct {
		Seed *int64 `json:"seed"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<20))
	if err != nil {
		return nil, false, errs.NewWarn("can not read body")
	}
	p := probe{}
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, errs.NewWarn("invalid json:" + err.Error())
	}
	exp, err := seqlab.ExperimentByJSON(data)
	if err != nil {
		return nil, false, err
	}
	return exp, p.Seed != nil, nil
}

func expByQuery(q *http.Request) (*seqlab.Experiment, bool, error) {
	exp := &seqlab.Experiment{Name: "adhoc"}
	query := q.URL.Query()

	// kind
	if s := query.Get("kind"); s != "" {
		exp.Kind = s
	} else {
		return nil, false, errs.NewWarn("kind is required")
	}

	// n
	if s := query.Get("n"); s != "" {
		u, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, errs.NewWarn("n must be integer")
		}
		exp.N = u
	} else {
		return nil, false, errs.NewWarn("n is required")
	}

	// trials
	if s := query.Get("trials"); s != "" {
		u, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, errs.NewWarn("trials must be integer")
		}
		exp.Trials = u
	} else {
		return nil, false, errs.NewWarn("trials is required")
	}

	// k
	if s := query.Get("k"); s != "" {
		u, err := strconv.Atoi(s)
		if err != nil {
			return nil, false, errs.NewWarn("k must be integer")
		}
		exp.K = u
	}

	// alpha
	if s := query.Get("alpha"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, errs.NewWarn("alpha must be float")
		}
		exp.Alpha = f
	}

	// weights: 逗號分隔，例如 weights=1,1,2
	if s := query.Get("weights"); s != "" {
		parts := strings.Split(s, ",")
		ws := make([]float64, 0, len(parts))
		for _, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, false, errs.NewWarn("weights must be comma-separated floats")
			}
			ws = append(ws, f)
		}
		exp.Weights = ws
	}

	// seed
	hasSeed := false
	if s := query.Get("seed"); s != "" {
		u, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false, errs.NewWarn("seed must be int64")
		}
		exp.Seed = u
		hasSeed = true
	}

	if err := exp.Validate(); err != nil {
		return nil, false, err
	}
	return exp, hasSeed, nil
}
