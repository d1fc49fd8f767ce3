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

package svrcfg

import (
	"log/slog"

	"github.com/zintix-labs/seqlab/errs"
	"github.com/zintix-labs/seqlab/server/logger"
)

type SvrCfg struct {
	Log *slog.Logger

	// MaxTrials 是單一 HTTP 請求可接受的試驗次數上限。
	// 實驗是同步跑的，這個上限就是請求耗時的天花板。
	MaxTrials int
}

const (
	minTrialsCap int = 1_000
	maxTrialsCap int = 10_000_000
)

func (sc *SvrCfg) Vaild() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}

	// 1,000 <= sc.MaxTrials <= 10,000,000
	// for 資源管理
	if sc.MaxTrials == 0 {
		sc.MaxTrials = maxTrialsCap
	}
	sc.MaxTrials = max(minTrialsCap, sc.MaxTrials)
	sc.MaxTrials = min(maxTrialsCap, sc.MaxTrials)
	return nil
}
