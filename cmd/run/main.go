package main

import "github.com/zintix-labs/seqlab/sdk/perf"

// makefile runner
func main() {
	bindVar()
	perf.RunPProf(executeExperiments, cfg.pprofmode)
}
