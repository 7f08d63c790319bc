// Package buildcore implements the core of buildh: joining path segments,
// staging directories and running commands. It uses idiomatic Go error
// handling and never terminates the process, which makes it the right
// foundation for tools that want to decide on their own how to handle a
// failing build step. Build scripts will usually prefer the wrapper from
// package [buildh] that applies the fatal error policy of a build script.
//
// The core concepts are [Join] and [ConcatSep] for strings, [EnsureDirs] for
// directories and [Runner] with its [Process] state machine for commands.
// Everything reports through a [Trace].
//
// [buildh]: https://pkg.go.dev/git.fractalqb.de/fractalqb/buildh
package buildcore
