// Package diff implements the patch reconstruction engine: a line-level
// minimal diff between two versions of a file, optional narrowing to a
// reviewer's selected region, and condensing of long unchanged runs to a
// fixed context window.
//
// Every function in this package is pure: no I/O, no shared state, no
// logging. All I/O lives behind the provider ports in usecase/changeset.
package diff
