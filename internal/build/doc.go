// Package build invokes the registered output adapters against a finished
// documentation tree.
//
// Adapters run one at a time in registration order. A failing or panicking
// adapter is recorded and the remaining adapters still run. The builder does
// no file I/O of its own; writing to the destination is the adapters' job.
package build
