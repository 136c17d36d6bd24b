// Stage D: snapshot save and mmap audit after a long walk.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ic-timon/lazytree/bench/gen"
	"github.com/ic-timon/lazytree/bench/metrics"
	"github.com/ic-timon/lazytree/tree"
)

var stageDSteps = []int{10_000, 100_000}

func runStageD(opts stageOpts) {
	dir, err := os.MkdirTemp("", "lazytree-bench-")
	if err != nil {
		log.Fatalf("temp dir: %v", err)
	}
	defer os.RemoveAll(dir)

	var rows []metrics.StageDRow
	for _, steps := range stageDSteps {
		nav, err := tree.New(opts.loadConfig(), tree.WithLogger(opts.log))
		if err != nil {
			log.Fatalf("navigator: %v", err)
		}
		for _, m := range gen.RandomWalk(steps, nav.Config().GroupSize, .8, opts.seed) {
			if m == gen.Up {
				_, err = nav.Ascend()
			} else {
				_, err = nav.Descend(int(m))
			}
			if err != nil {
				log.Fatalf("walk: %v", err)
			}
		}

		path := filepath.Join(dir, fmt.Sprintf("walk-%d.lztr", steps))
		t0 := time.Now()
		if err := nav.SaveSnapshot(path); err != nil {
			log.Fatalf("save: %v", err)
		}
		saveDur := time.Since(t0)
		fi, err := os.Stat(path)
		if err != nil {
			log.Fatalf("stat: %v", err)
		}

		t0 = time.Now()
		a, err := tree.OpenAudit(path)
		if err != nil {
			log.Fatalf("open audit: %v", err)
		}
		verr := tree.CheckInvariants(a)
		auditDur := time.Since(t0)
		a.Close()
		if verr != nil {
			log.Printf("audit steps=%d: %v", steps, verr)
		}

		row := metrics.StageDRow{
			Nodes:    nav.Store().Len(),
			Bytes:    fi.Size(),
			SaveMs:   float64(saveDur.Microseconds()) / 1e3,
			AuditMs:  float64(auditDur.Microseconds()) / 1e3,
			Verified: verr == nil,
		}
		rows = append(rows, row)
		fmt.Printf("  nodes=%-8d bytes=%-10d save=%.2fms audit=%.2fms ok=%v\n",
			row.Nodes, row.Bytes, row.SaveMs, row.AuditMs, row.Verified)
	}

	path := metrics.ReportPath("stage_d_", ".json")
	if err := metrics.WriteJSON(rows, path); err != nil {
		log.Printf("write report: %v", err)
		return
	}
	fmt.Printf("Stage D done, report: %s\n", path)
}
