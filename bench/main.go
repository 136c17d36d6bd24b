// Bench entry point: -stage a|b|c|d
package main

import (
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ic-timon/lazytree/tree"
)

type stageOpts struct {
	seed   int64
	config string
	log    *zap.Logger
}

func (o stageOpts) loadConfig() *tree.Config {
	if o.config == "" {
		cfg := tree.DefaultConfig()
		cfg.Seed = o.seed
		return cfg
	}
	cfg, err := tree.LoadConfigFile(o.config)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.Seed = o.seed
	return cfg
}

func main() {
	stage := flag.String("stage", "", "stage: a(sampler frequencies) | b(random-walk growth) | c(rejection cost) | d(snapshot save and audit)")
	seed := flag.Int64("seed", 1, "random seed")
	config := flag.String("config", "", "toml or yaml config file; defaults when empty")
	level := flag.String("log-level", "warn", "log level")
	flag.Parse()

	lvl, err := zapcore.ParseLevel(*level)
	if err != nil {
		log.Fatalf("log level: %v", err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := zcfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	opts := stageOpts{seed: *seed, config: *config, log: logger}
	switch *stage {
	case "a":
		runStageA(opts)
	case "b":
		runStageB(opts)
	case "c":
		runStageC(opts)
	case "d":
		runStageD(opts)
	default:
		log.Fatalf("specify -stage a|b|c|d")
	}
	fmt.Println("bench done")
}
