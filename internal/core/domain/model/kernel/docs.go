// Package kernel contains shared value objects used across all domain
// aggregates: identifiers and monetary amounts. Types in this package are
// immutable, validate themselves, and carry no behavior specific to any
// single aggregate.
package kernel
