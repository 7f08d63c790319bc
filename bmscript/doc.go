// Package bmscript is the build script of the bm toolchain written with
// buildh: it compiles the C tools and assembles the examples with the
// freshly built assembler.
package bmscript
