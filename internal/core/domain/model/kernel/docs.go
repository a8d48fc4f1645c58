// Package kernel provides the core domain primitives shared by every model
// package, currently the UUID value object with validation and comparison
// capabilities. These primitives are immutable and safe for concurrent use.
package kernel
