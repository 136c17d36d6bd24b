// lazytree: interactive explorer for a lazily generated tree.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/ic-timon/lazytree/render"
	"github.com/ic-timon/lazytree/tree"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "config file (.toml, .yaml, .yml); defaults when empty")
	seed := flag.Int64("seed", 0, "random seed; 0 keeps the config seed, or uses the clock if that is 0 too")
	logLevel := flag.String("log-level", "warn", "log level: debug|info|warn|error")
	color := flag.Bool("color", true, "colour output")
	flag.Parse()

	log, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lazytree: %v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	cfg := tree.DefaultConfig()
	if *configPath != "" {
		if cfg, err = tree.LoadConfigFile(*configPath); err != nil {
			log.Fatal("load config", zap.Error(err))
		}
	}
	switch {
	case *seed != 0:
		cfg.Seed = *seed
	case cfg.Seed == 0:
		cfg.Seed = time.Now().UnixNano()
	}

	nav, err := tree.New(cfg, tree.WithLogger(log))
	if err != nil {
		log.Fatal("start navigator", zap.Error(err))
	}
	log.Info("session started",
		zap.Stringer("session", nav.ID()),
		zap.Int64("seed", cfg.Seed),
		zap.Int("group_size", cfg.GroupSize),
		zap.Int("types", len(cfg.Types)))

	var opts []render.Option
	if !*color {
		opts = append(opts, render.WithProfile(termenv.Ascii))
	}
	r := newREPL(nav, render.New(os.Stdout, cfg, opts...), os.Stdout, log.Sugar())

	fmt.Println("lazytree - type 'help' for commands, 'quit' to exit")
	r.show()
	r.run(bufio.NewReader(os.Stdin))
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	return zc.Build()
}

func (r *REPL) run(in *bufio.Reader) {
	for {
		fmt.Fprint(r.w, "lazytree> ")
		line, err := in.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				r.log.Errorw("read input", "err", err)
			}
			fmt.Fprintln(r.w)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !r.handleCommand(line) {
			return
		}
	}
}
