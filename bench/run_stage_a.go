// Stage A: sampler frequencies against configured weights.
package main

import (
	"fmt"
	"log"
	"math"
	"math/rand"

	"github.com/ic-timon/lazytree/bench/metrics"
	"github.com/ic-timon/lazytree/tree"
)

const stageADraws = 1_000_000

func runStageA(opts stageOpts) {
	cfg := opts.loadConfig()
	s, err := tree.NewSampler(cfg.Weights(), cfg.Homogeneity, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		log.Fatalf("sampler: %v", err)
	}

	counts := make([]int, s.Types())
	for i := 0; i < stageADraws; i++ {
		counts[s.Sample()]++
	}

	var rows []metrics.StageARow
	worst := 0.0
	for i, c := range counts {
		t := tree.NodeType(i)
		observed := float64(c) / stageADraws
		row := metrics.StageARow{
			Type:     i,
			Name:     cfg.TypeName(t),
			Weight:   s.Weight(t),
			Expected: s.Probability(t),
			Observed: observed,
			AbsErr:   math.Abs(observed - s.Probability(t)),
		}
		worst = math.Max(worst, row.AbsErr)
		rows = append(rows, row)
		fmt.Printf("  %-8s weight=%-5g expected=%.4f observed=%.4f\n", row.Name, row.Weight, row.Expected, row.Observed)
	}
	fmt.Printf("Stage A: %d draws, worst abs error %.5f\n", stageADraws, worst)

	path := metrics.ReportPath("stage_a_", ".csv")
	if err := metrics.WriteStageACSV(rows, path); err != nil {
		log.Printf("write report: %v", err)
		return
	}
	fmt.Printf("report: %s\n", path)
}
