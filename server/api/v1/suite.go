package v1

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/zintix-labs/seqlab"
	"github.com/zintix-labs/seqlab/errs"
	"github.com/zintix-labs/seqlab/server/httperr"
	"github.com/zintix-labs/seqlab/stats"
)

// RunSuite 傳入 YAML 實驗清單，逐筆執行並回傳所有報表。
// Content-Type 接受 application/yaml 或 text/plain，body 即 suite 檔內容。
func (eh *ExpHandler) RunSuite(w http.ResponseWriter, r *http.Request) {
	type SuiteResponse struct {
		Reports  []*stats.Report `json:"reports"`
		Passed   int             `json:"passed"`
		Failed   int             `json:"failed"`
		UsedTime int64           `json:"used_ms"`
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	data, err := io.ReadAll(r.Body)
	if err != nil {
		httperr.Errs(w, errs.NewWarn("can not read body"))
		return
	}

	suite, err := seqlab.SuiteByYAML(data)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 總量管制：整份 suite 的 trials 加總也要守 MaxTrials。
	total := 0
	for i := range suite {
		total += suite[i].Trials
	}
	if total > eh.Cfg.MaxTrials {
		httperr.Errs(w, errs.Warnf("suite total trials must be at most %d", eh.Cfg.MaxTrials))
		return
	}

	start := time.Now()
	resp := SuiteResponse{Reports: make([]*stats.Report, 0, len(suite))}
	for i := range suite {
		report, err := suite[i].Run(false)
		if err != nil {
			httperr.Errs(w, errs.Wrap(err, "run suite err: "+suite[i].Name))
			httperr.Log(eh.Cfg.Log, "run suite err", err)
			return
		}
		resp.Reports = append(resp.Reports, report)
		if report.Pass {
			resp.Passed++
		} else {
			resp.Failed++
		}
	}
	resp.UsedTime = time.Since(start).Milliseconds()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
