// Stage C: rejection-sampling cost of producing a group for each required parent type.
package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"

	"github.com/ic-timon/lazytree/bench/metrics"
	"github.com/ic-timon/lazytree/tree"
)

const stageCGroups = 200

func runStageC(opts stageOpts) {
	cfg := opts.loadConfig()
	s, err := tree.NewSampler(cfg.Weights(), cfg.Homogeneity, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		log.Fatalf("sampler: %v", err)
	}

	var rows []metrics.StageCRow
	for i := 0; i < s.Types(); i++ {
		required := tree.NodeType(i)
		store := tree.NewStore(cfg.GroupSize)
		g := tree.NewGenerator(store, s, cfg.MaxAttempts, opts.log)

		row := metrics.StageCRow{Type: i, Name: cfg.TypeName(required)}
		attempts := make([]float64, 0, stageCGroups)
		for n := 0; n < stageCGroups; n++ {
			a, err := g.CreateSiblingGroup(store.Len(), tree.NoLink, &required)
			if errors.Is(err, tree.ErrUngeneratable) {
				row.Failures++
				// types that never resolve, such as zero-weight ones, are given up on early
				if row.Failures >= 3 && len(attempts) == 0 {
					break
				}
				continue
			}
			if err != nil {
				log.Fatalf("create group: %v", err)
			}
			attempts = append(attempts, float64(a))
		}
		d := metrics.DistOf(attempts)
		row.Groups = d.N
		row.AttemptsMean = d.Avg
		row.AttemptsP99 = d.P99
		row.AttemptsMax = d.Max
		rows = append(rows, row)
		fmt.Printf("  %-8s groups=%-4d failures=%-3d mean=%.1f p99=%.0f max=%.0f\n",
			row.Name, row.Groups, row.Failures, row.AttemptsMean, row.AttemptsP99, row.AttemptsMax)
	}

	path := metrics.ReportPath("stage_c_", ".csv")
	if err := metrics.WriteStageCCSV(rows, path); err != nil {
		log.Printf("write report: %v", err)
		return
	}
	fmt.Printf("Stage C done, report: %s\n", path)
}
