// Package redactor provides io.Reader-based chaining around the redact rule engine.
package redactor

import "io"

// Redactor indicates a type implements a Redact method, which both takes an io.Reader and returns
// an io.Reader. Because a source may need to go through multiple Redactors, returning a
// RedactedReader makes it easier to chain them together.
type Redactor interface {
	Redact(reader io.Reader) (RedactedReader, error)
}
