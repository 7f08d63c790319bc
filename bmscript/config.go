package bmscript

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is everything the bm build script needs to know about the project.
// The zero value is not useful, start with [DefaultConfig].
type Config struct {
	Compiler    string   `toml:"compiler"`
	CFlags      []string `toml:"cflags"`
	ExtraCFlags string   `toml:"extra_cflags"` // shell syntax, $VARs from the build env
	Tools       []string `toml:"tools"`

	SrcDir        string `toml:"src_dir"`
	BuildDir      string `toml:"build_dir"`
	ExamplesDir   string `toml:"examples_dir"`
	ExampleSuffix string `toml:"example_suffix"`
	// Name globs of example sources to skip, e.g. work in progress.
	ExampleExclude []string `toml:"example_exclude"`
	Assembler      string   `toml:"assembler"`
	AsmFlags       []string `toml:"asm_flags"`

	StopOnNonZeroExit bool   `toml:"stop_on_nonzero_exit"`
	EnvFile           string `toml:"env_file"`
}

func DefaultConfig() Config {
	return Config{
		Compiler: "clang",
		CFlags: []string{
			"-Wall", "-Wextra", "-Wswitch-enum", "-Wmissing-prototypes",
			"-Wconversion", "-Wpedantic", "-fno-strict-aliasing", "-ggdb",
			"-std=c11",
		},
		Tools:         []string{"basm", "bme", "bmr", "debasm", "bdb", "basm2nasm"},
		SrcDir:        "src",
		BuildDir:      "build",
		ExamplesDir:   "examples",
		ExampleSuffix: "basm",
		Assembler:     "basm",
		AsmFlags:      []string{"-g"},
	}
}

// LoadConfig reads a TOML file. Keys that are not in the file keep their
// value from [DefaultConfig]. Unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load build config: %w", err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load build config %s: unknown keys %s",
			path,
			strings.Join(keys, ", "),
		)
	}
	set := func(key string, dst, src any) {
		if !meta.IsDefined(key) {
			return
		}
		switch dst := dst.(type) {
		case *string:
			*dst = strings.TrimSpace(*src.(*string))
		case *[]string:
			*dst = *src.(*[]string)
		case *bool:
			*dst = *src.(*bool)
		}
	}
	set("compiler", &cfg.Compiler, &raw.Compiler)
	set("cflags", &cfg.CFlags, &raw.CFlags)
	set("extra_cflags", &cfg.ExtraCFlags, &raw.ExtraCFlags)
	set("tools", &cfg.Tools, &raw.Tools)
	set("src_dir", &cfg.SrcDir, &raw.SrcDir)
	set("build_dir", &cfg.BuildDir, &raw.BuildDir)
	set("examples_dir", &cfg.ExamplesDir, &raw.ExamplesDir)
	set("example_suffix", &cfg.ExampleSuffix, &raw.ExampleSuffix)
	set("example_exclude", &cfg.ExampleExclude, &raw.ExampleExclude)
	set("assembler", &cfg.Assembler, &raw.Assembler)
	set("asm_flags", &cfg.AsmFlags, &raw.AsmFlags)
	set("stop_on_nonzero_exit", &cfg.StopOnNonZeroExit, &raw.StopOnNonZeroExit)
	set("env_file", &cfg.EnvFile, &raw.EnvFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("build config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error
	for _, f := range []struct{ key, val string }{
		{"compiler", cfg.Compiler},
		{"src_dir", cfg.SrcDir},
		{"build_dir", cfg.BuildDir},
		{"examples_dir", cfg.ExamplesDir},
		{"example_suffix", cfg.ExampleSuffix},
		{"assembler", cfg.Assembler},
	} {
		if f.val == "" {
			errs = append(errs, fmt.Errorf("%s is empty", f.key))
		}
	}
	for i, tool := range cfg.Tools {
		if strings.TrimSpace(tool) == "" {
			errs = append(errs, fmt.Errorf("tools[%d] is empty", i))
		}
	}
	for _, glob := range cfg.ExampleExclude {
		if _, err := filepath.Match(glob, ""); err != nil {
			errs = append(errs, fmt.Errorf("example_exclude '%s': %w", glob, err))
		}
	}
	return errors.Join(errs...)
}
