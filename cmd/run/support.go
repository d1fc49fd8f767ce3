package main

import (
	"crypto/rand"
	"flag"
	"fmt"
	"log"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zintix-labs/seqlab"
	"github.com/zintix-labs/seqlab/stats"
)

var cfg *config = new(config)

type config struct {
	suite     string
	kind      string
	n         int
	k         int
	weights   []float64
	trials    int
	seed      int64
	alpha     float64
	out       string
	pprofmode string
}

type weightsFlag struct{ p *[]float64 }

func (f weightsFlag) String() string {
	if f.p == nil || len(*f.p) == 0 {
		return ""
	}
	parts := make([]string, len(*f.p))
	for i, w := range *f.p {
		parts[i] = strconv.FormatFloat(w, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (f weightsFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	ws := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return err
		}
		ws = append(ws, v)
	}
	*f.p = ws
	return nil
}

func bindVar() {
	// 綁定 Flag 到本地變數的指標 (&)
	flag.StringVar(&cfg.suite, "cfg", "", "path to suite yaml (runs every experiment in it)")
	flag.StringVar(&cfg.kind, "kind", "", "experiment kind: "+strings.Join(seqlab.Kinds(), "|"))
	flag.IntVar(&cfg.n, "n", 6, "population size")
	flag.IntVar(&cfg.k, "k", 0, "resize target size")
	flag.Var(weightsFlag{&cfg.weights}, "weights", "comma-separated weights, e.g. 1,1,2")
	flag.IntVar(&cfg.trials, "trials", 1000000, "number of trials")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed for random number generator")
	flag.Float64Var(&cfg.alpha, "alpha", 0, "significance level (0 = default)")
	flag.StringVar(&cfg.out, "o", "table", "output: table|json|yaml")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")

	flag.Parse()

	// given seed illeagel -> default seed
	if cfg.seed < 1 {
		seed, err := rand.Int(rand.Reader, big.NewInt(math.MaxInt64))
		if err != nil {
			log.Fatal(err)
		}
		cfg.seed = seed.Int64()
	}
}

// 這裡解析並分支要執行的實驗：suite 檔 or 單發 ad-hoc
func executeExperiments() {
	green := "\033[1;32m"
	reset := "\033[0m"
	p := message.NewPrinter(language.English)

	if cfg.suite != "" {
		data, err := os.ReadFile(cfg.suite)
		if err != nil {
			log.Fatal(err)
		}
		suite, err := seqlab.SuiteByYAML(data)
		if err != nil {
			log.Fatal(err)
		}
		p.Printf("%s[SUITE:%s] [EXPERIMENTS:%d]%s\n", green, cfg.suite, len(suite), reset)

		passed, failed := 0, 0
		for i := range suite {
			report, err := suite[i].Run(true)
			if err != nil {
				log.Fatal(err)
			}
			render(report)
			if report.Pass {
				passed++
			} else {
				failed++
			}
		}
		p.Printf("%s[PASSED:%d] [FAILED:%d]%s\n", green, passed, failed, reset)
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	// 單發實驗
	if cfg.kind == "" {
		log.Fatal("value err : -kind or -cfg is required")
	}
	e := &seqlab.Experiment{
		Name:    "adhoc",
		Kind:    cfg.kind,
		N:       cfg.n,
		K:       cfg.k,
		Weights: cfg.weights,
		Trials:  cfg.trials,
		Seed:    cfg.seed,
		Alpha:   cfg.alpha,
	}
	if err := e.Validate(); err != nil {
		log.Fatal(err)
	}
	p.Printf("%s[KIND:%s] [N:%d K:%d] [TRIALS:%d] [SEED:%d]%s\n", green, e.Kind, e.N, e.K, e.Trials, e.Seed, reset)
	report, err := e.Run(true)
	if err != nil {
		log.Fatal(err)
	}
	render(report)
	if !report.Pass {
		os.Exit(1)
	}
}

func render(r *stats.Report) {
	switch cfg.out {
	case "json":
		jr := &stats.JsonReportRender{}
		if err := jr.Write(os.Stdout, r); err != nil {
			log.Fatal(err)
		}
	case "yaml":
		yr := &stats.YAMLReportRender{}
		if err := yr.Write(os.Stdout, r); err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Println(r.String())
	}
}
