// Command buildh builds the bm toolchain and its examples.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"git.fractalqb.de/fractalqb/buildh"
	"git.fractalqb.de/fractalqb/buildh/bmscript"
	"git.fractalqb.de/fractalqb/buildh/buildcore"
	"github.com/alecthomas/kong"
)

const defaultConfig = "buildh.toml"

type CLI struct {
	Config        string `short:"c" help:"Build configuration file (default ./buildh.toml if it exists)"`
	Dir           string `short:"C" help:"Change to directory before doing anything" type:"existingdir"`
	Trace         string `short:"t" help:"Trace level" enum:"off,warn,info,debug" default:"info"`
	DryRun        bool   `short:"n" help:"Print commands without running them"`
	StopOnFailure bool   `help:"Abort the build when a command exits non-zero"`
	ListExamples  bool   `help:"List the example sources and exit"`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("buildh"),
		kong.Description("Build the bm tools and assemble the examples."),
	)
	os.Exit(cli.run(os.Stdout, os.Stderr))
}

func (cli *CLI) run(stdout, stderr io.Writer) int {
	log := slog.New(slog.NewTextHandler(stderr, nil))
	if cli.Dir != "" {
		if err := os.Chdir(cli.Dir); err != nil {
			log.Error("cannot change directory", "dir", cli.Dir, "error", err)
			return 1
		}
	}
	cfg, err := cli.loadConfig()
	if err != nil {
		log.Error("cannot load configuration", "error", err)
		return 1
	}
	if cli.StopOnFailure {
		cfg.StopOnNonZeroExit = true
	}

	wtr := &buildcore.WriteTracer{Out: stdout, Err: stderr}
	if err := wtr.ParseLogFlag(cli.Trace); err != nil {
		log.Error("bad trace flag", "error", err)
		return 1
	}
	env := buildcore.DefaultEnv()
	env.Out, env.Err = stdout, stderr
	b := buildh.NewBuild(buildcore.NewTrace(context.Background(), wtr), env)
	if cli.DryRun {
		b.Runner = buildcore.DryRunner{}
	}
	s := bmscript.New(cfg, b)

	if cli.ListExamples {
		ls, err := s.Examples()
		if err != nil {
			log.Error("cannot list examples", "error", err)
			return 1
		}
		for _, ex := range ls {
			fmt.Fprintln(stdout, ex)
		}
		return 0
	}

	rep := s.Run()
	bmscript.Fprint(stderr, rep)
	return 0
}

func (cli *CLI) loadConfig() (bmscript.Config, error) {
	if cli.Config != "" {
		return bmscript.LoadConfig(cli.Config)
	}
	cfg, err := bmscript.LoadConfig(defaultConfig)
	if errors.Is(err, fs.ErrNotExist) {
		return bmscript.DefaultConfig(), nil
	}
	return cfg, err
}
