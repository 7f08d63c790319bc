package bmscript

import (
	"fmt"
	"io"

	"git.fractalqb.de/fractalqb/buildh"
	"git.fractalqb.de/fractalqb/buildh/mkfs"
	"github.com/joho/godotenv"
	"mvdan.cc/sh/v3/shell"
)

type Script struct {
	Config Config
	Build  *buildh.Build
}

func New(cfg Config, b *buildh.Build) *Script {
	if b == nil {
		b = buildh.NewBuild(nil, nil)
	}
	b.StopOnNonZeroExit = b.StopOnNonZeroExit || cfg.StopOnNonZeroExit
	return &Script{Config: cfg, Build: b}
}

// Run builds all tools and then all examples. Failures to create
// directories, start commands or read the examples directory are fatal.
func (s *Script) Run() *Report {
	var (
		cfg = &s.Config
		b   = s.Build
		rep Report
	)
	if err := cfg.Validate(); err != nil {
		b.Fatal(err)
	}
	if err := s.loadEnvFile(); err != nil {
		b.Fatal(err)
	}
	extra, err := s.extraCFlags()
	if err != nil {
		b.Fatal(err)
	}

	binDir := buildh.Path(cfg.BuildDir, "bin")
	b.MkDirs(binDir)
	for _, tool := range cfg.Tools {
		b.Info("Building `tool`.c...", `tool`, tool)
		argv := make([]string, 0, len(cfg.CFlags)+len(extra)+4)
		argv = append(argv, cfg.Compiler)
		argv = append(argv, cfg.CFlags...)
		argv = append(argv, extra...)
		argv = append(argv,
			"-o", buildh.Path(binDir, tool),
			buildh.Path(cfg.SrcDir, buildh.Concat(tool, ".c")),
		)
		s.step(&rep, argv)
	}

	b.MkDirs(buildh.Path(cfg.BuildDir, "examples"))
	examples, err := s.Examples()
	if err != nil {
		b.Fatal(err)
	}
	asm := buildh.Path(binDir, cfg.Assembler)
	for _, ex := range examples {
		b.Info("Building `example`...", `example`, ex)
		argv := make([]string, 0, len(cfg.AsmFlags)+3)
		argv = append(argv, asm)
		argv = append(argv, cfg.AsmFlags...)
		argv = append(argv,
			buildh.Path(cfg.ExamplesDir, ex),
			buildh.Path(cfg.BuildDir, buildh.Concat(ex, ".bm")),
		)
		s.step(&rep, argv)
	}
	return &rep
}

// Examples returns the names of the example sources in filename order.
func (s *Script) Examples() ([]string, error) {
	ls := mkfs.DirList{
		Dir: s.Config.ExamplesDir,
		Filter: mkfs.All{
			mkfs.IsDir(false),
			mkfs.Suffix(s.Config.ExampleSuffix),
			mkfs.ExcludeNames(s.Config.ExampleExclude...),
		},
	}
	names, err := ls.List()
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", ls.Dir, err)
	}
	return names, nil
}

func (s *Script) step(rep *Report, argv []string) {
	res := s.Build.Cmd(argv...)
	rep.add(res.Argv.String(), res.OK())
}

func (s *Script) loadEnvFile() error {
	if s.Config.EnvFile == "" {
		return nil
	}
	vars, err := godotenv.Read(s.Config.EnvFile)
	if err != nil {
		return fmt.Errorf("read env file %s: %w", s.Config.EnvFile, err)
	}
	env := s.Build.Env.Clone()
	env.SetVarsMap(vars)
	s.Build.Env = env
	return nil
}

func (s *Script) extraCFlags() ([]string, error) {
	if s.Config.ExtraCFlags == "" {
		return nil, nil
	}
	fields, err := shell.Fields(s.Config.ExtraCFlags, func(name string) string {
		v, _ := s.Build.Env.Var(name)
		return v
	})
	if err != nil {
		return nil, fmt.Errorf("extra_cflags: %w", err)
	}
	return fields, nil
}

// Fprint writes a summary of rep to w if there were failures.
func Fprint(w io.Writer, rep *Report) {
	if rep.OK() {
		return
	}
	fmt.Fprintf(w, "%d of %d commands failed:\n", rep.FailedCount(), rep.Len())
	for _, c := range rep.Failed() {
		fmt.Fprintln(w, "  ", c)
	}
}
