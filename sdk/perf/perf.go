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

package perf

import (
	"os"
	"runtime"
	"runtime/pprof"
)

const pprofDir = "build/profiling" // pprof檔案寫入路徑

// RunPProf 根據 mode 決定以哪種 profiling 包裹 exe 執行。
// mode: "" | cpu | heap | allocs。未知 mode 直接執行。
func RunPProf(exe func(), mode string) {
	switch mode {
	case "cpu":
		PProfCPU(exe)
	case "heap":
		PProfHeap(exe)
	case "allocs":
		PProfAllocs(exe)
	default:
		exe()
	}
}

// PProfCPU 對送入函數做 CPU profiling。
// 輸出檔可做性能分析，也可拿來當 pgo 的優化 blueprint。
// 輸出檔：build/profiling/cpu.pprof
func PProfCPU(exe func()) {
	_ = os.MkdirAll(pprofDir, 0o755)

	f, err := os.Create(pprofDir + "/cpu.pprof")
	if err != nil {
		panic("failed to create cpu.pprof : " + err.Error())
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		panic("failed to start pprof : " + err.Error())
	}
	defer pprof.StopCPUProfile()

	exe()
}

// PProfHeap 在 exe() 執行完後寫出一次 Heap Snapshot（in-use memory）。
// 寫出前呼叫一次 runtime.GC()，以獲得較準確的 live objects 視圖。
// 輸出檔：build/profiling/heap.pprof
func PProfHeap(exe func()) {
	exe()

	_ = os.MkdirAll(pprofDir, 0o755)
	runtime.GC()

	f, err := os.Create(pprofDir + "/heap.pprof")
	if err != nil {
		panic("failed to create heap.pprof : " + err.Error())
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		panic("failed to write heap profile : " + err.Error())
	}
}

// PProfAllocs 在 exe() 執行完後寫出累計配置（allocs）profile。
// 和 heap 的差別：allocs 看的是「從程式啟動以來配置了什麼」，適合追 allocation 熱點。
// 輸出檔：build/profiling/allocs.pprof
func PProfAllocs(exe func()) {
	exe()

	_ = os.MkdirAll(pprofDir, 0o755)

	f, err := os.Create(pprofDir + "/allocs.pprof")
	if err != nil {
		panic("failed to create allocs.pprof : " + err.Error())
	}
	defer f.Close()
	if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
		panic("failed to write allocs profile : " + err.Error())
	}
}
