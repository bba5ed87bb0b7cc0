//go:build !novalidate

package model

// Validating builds check argument lengths and the assignment contract of events. Build with the "novalidate" tag to
// skip those checks when callers are known to be well-formed.
const validating = true
