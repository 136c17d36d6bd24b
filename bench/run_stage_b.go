// Stage B: store growth and step latency over seeded random walks.
package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ic-timon/lazytree/bench/gen"
	"github.com/ic-timon/lazytree/bench/metrics"
	"github.com/ic-timon/lazytree/tree"
)

var (
	stageBSteps = []int{1_000, 10_000, 100_000}
	stageBBias  = []float64{0.5, 0.7, 0.9}
)

func runStageB(opts stageOpts) {
	var rows []metrics.StageBRow
	for _, steps := range stageBSteps {
		for _, bias := range stageBBias {
			row, err := walkOnce(opts, steps, bias)
			if err != nil {
				log.Fatalf("walk steps=%d bias=%.1f: %v", steps, bias, err)
			}
			rows = append(rows, row)
			fmt.Printf("  steps=%-7d bias=%.1f nodes=%-8d p99=%.1fus attempts/group=%.2f %.0fB/node\n",
				row.Steps, row.DownBias, row.Nodes, row.StepP99Us, row.AttemptsMean, row.BytesPerNode)
		}
	}

	path := metrics.ReportPath("stage_b_", ".csv")
	if err := metrics.WriteStageBCSV(rows, path); err != nil {
		log.Printf("write report: %v", err)
		return
	}
	fmt.Printf("Stage B done, report: %s\n", path)
}

func walkOnce(opts stageOpts, steps int, bias float64) (metrics.StageBRow, error) {
	cfg := opts.loadConfig()
	metrics.GC()
	before := metrics.Take(0)

	nav, err := tree.New(cfg, tree.WithLogger(opts.log))
	if err != nil {
		return metrics.StageBRow{}, err
	}
	moves := gen.RandomWalk(steps, cfg.GroupSize, bias, opts.seed)
	lat := make([]time.Duration, 0, len(moves))

	start := time.Now()
	for _, m := range moves {
		t0 := time.Now()
		if m == gen.Up {
			_, err = nav.Ascend()
		} else {
			_, err = nav.Descend(int(m))
		}
		lat = append(lat, time.Since(t0))
		if err != nil {
			return metrics.StageBRow{}, err
		}
	}
	dur := time.Since(start)

	st := nav.Stats()
	after := metrics.Take(st.Nodes)
	d := metrics.DistOf(metrics.DurationsMicros(lat))
	row := metrics.StageBRow{
		Steps:        steps,
		DownBias:     bias,
		Nodes:        st.Nodes,
		Groups:       st.Groups,
		DurMs:        float64(dur.Milliseconds()),
		StepP50Us:    d.P50,
		StepP99Us:    d.P99,
		BytesPerNode: metrics.BytesPerNode(before, after),
	}
	if st.Groups > 0 {
		row.AttemptsMean = float64(st.Attempts) / float64(st.Groups)
	}
	return row, nil
}
