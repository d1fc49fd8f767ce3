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

package main

import (
	"flag"

	"github.com/zintix-labs/seqlab/server"
	"github.com/zintix-labs/seqlab/server/logger"
	"github.com/zintix-labs/seqlab/server/svrcfg"
)

// This command is intentionally a "lab server" entrypoint for the seqlab repo.
// It enables all developer endpoints by default.
// For production deployments, use a separate scaffold project and run ModeProd.
func main() {
	server.Run(loadConfigFromFlags())
}

type config struct {
	LogMode   string
	MaxTrials int
}

func loadConfigFromFlags() *svrcfg.SvrCfg {
	cfg := new(config)
	flag.StringVar(&cfg.LogMode, "log-mode", "ModeDev", "log mode: ModeDev|ModeProd|ModeSilence")
	flag.IntVar(&cfg.MaxTrials, "max-trials", 10_000_000, "max trials per request")

	flag.Parse()

	log, _ := logger.NewAsync(4096, cfg.norm())

	return &svrcfg.SvrCfg{
		Log:       log,
		MaxTrials: cfg.MaxTrials,
	}
}

func (cfg *config) norm() logger.LogMode {
	switch cfg.LogMode {
	case "ModeDev":
		return logger.ModeDev
	case "ModeProd":
		return logger.ModeProd
	case "ModeSilence":
		return logger.ModeSilence
	default:
		return logger.ModeDev
	}
}
