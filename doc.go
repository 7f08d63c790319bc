// Package buildh helps to write build scripts in Go for projects that are
// built by running a fixed sequence of commands. Instead of shell scripts or
// a declarative build file, the build is described as ordinary procedural
// Go code: join paths with [Path], create directories with [Build.MkDirs]
// and run tools with [Build.Cmd].
//
// buildh is just a Go library. A build script is a Go executable, and
//
//	"mk.go" is the recommended file name for a build script
//
// A typical script looks like
//
//	func main() {
//		b := buildh.NewBuild(nil, nil)
//		b.MkDirs(buildh.Path("build", "bin"))
//		for _, tool := range []string{"basm", "bme"} {
//			b.Cmd("cc", "-o", buildh.Path("build", "bin", tool),
//				buildh.Path("src", buildh.Concat(tool, ".c")))
//		}
//	}
//
// Build with
//
//	project$ go run mk.go
//
// Everything that keeps the build from going on, e.g. a directory that
// cannot be created or a command that cannot be started, logs an "[ERROR]"
// line and terminates the script. A command that runs and fails is logged
// as a warning unless [Build.StopOnNonZeroExit] is set. Package [buildcore]
// offers the same functions with idiomatic error returns.
package buildh
