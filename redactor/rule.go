package redactor

import (
	"bytes"
	"io"

	"github.com/keyscrub/keyscrub/redact"
)

var _ Redactor = &RuleRedactor{}

// RuleRedactor applies an ordered redact rule list to a stream. Rules run strictly in sequence,
// each over the cumulative output of the one before it, matching the contract of
// redact.ApplyMany.
type RuleRedactor struct {
	redactions []*redact.Redact
}

// NewRuleRedactor wraps a rule list in a RuleRedactor. A nil or empty list produces a redactor
// that passes content through unchanged.
func NewRuleRedactor(redactions []*redact.Redact) *RuleRedactor {
	return &RuleRedactor{redactions: redactions}
}

// Redact consumes all of reader, applies the rule list, and returns a reader over the scrubbed
// content. Input is read to completion before any substitution happens, so no partially-redacted
// content is ever observable.
func (r *RuleRedactor) Redact(reader io.Reader) (RedactedReader, error) {
	buf := new(bytes.Buffer)
	if err := redact.ApplyMany(r.redactions, buf, reader); err != nil {
		return RedactedReader{}, err
	}
	return RedactedReader{reader: buf}, nil
}
