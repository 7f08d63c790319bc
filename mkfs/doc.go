// Package mkfs lists directory contents for build scripts, e.g. to run one
// command for each source file in a directory.
package mkfs
