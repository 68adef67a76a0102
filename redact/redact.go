// Package redact provides the rule engine for rewriting hardcoded secrets
// into environment-variable lookups.
package redact

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// DefaultReplace stands in when a rule does not specify replacement text.
const DefaultReplace = "<REDACTED>"

// Redact is a single compiled redaction rule. The matcher locates a secret-bearing substring and
// Replace is substituted for every non-overlapping match. Replace must never contain a live
// credential.
type Redact struct {
	ID      string `json:"ID"`
	matcher *regexp.Regexp
	Replace string `json:"replace"`
}

// New takes the matcher as a string and returns a compiled, ready-to-use rule. ID and Replace are
// optional and can be left empty.
func New(matcher, id, replace string) (*Redact, error) {
	re, err := regexp.Compile(matcher)
	if err != nil {
		return nil, err
	}
	if id == "" {
		genID := md5.Sum([]byte(matcher))
		id = fmt.Sprint(genID)
	}
	if replace == "" {
		replace = DefaultReplace
	}
	return &Redact{id, re, replace}, nil
}

// Apply reads everything from r, substitutes Replace for each match, and writes the result to w.
func (x Redact) Apply(w io.Writer, r io.Reader) error {
	bts, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	newBts := x.matcher.ReplaceAll(bts, []byte(x.Replace))
	_, err = w.Write(newBts)
	return err
}

// ApplyMany takes a slice of redactions and a writer + reader, reading everything in and applying
// redactions in sequential order before writing. Each rule operates on the cumulative output of
// the one before it, so a Redact that appears earlier in the list takes precedence over later
// Redacts.
func ApplyMany(redactions []*Redact, w io.Writer, r io.Reader) error {
	bts, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	for _, red := range redactions {
		bts = red.matcher.ReplaceAll(bts, []byte(red.Replace))
	}
	_, err = w.Write(bts)
	return err
}

// String takes a string and a slice of redactions, and wraps it with a reader and writer to apply
// the redactions, returning a string back.
func String(result string, redactions []*Redact) (string, error) {
	buf := new(bytes.Buffer)
	err := ApplyMany(redactions, buf, strings.NewReader(result))
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// File takes src and dest paths and a slice of redactions. It applies redactions line by line,
// reading from the source and writing to the destination. Returns nil on success, otherwise an
// error.
func File(src, dest string, redactions []*Redact) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	destFile, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer destFile.Close()

	w := bufio.NewWriter(destFile)
	scanner := bufio.NewScanner(srcFile)
	for scanner.Scan() {
		res, err := String(scanner.Text(), redactions)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(res + "\n"); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return w.Flush()
}

// Flatten combines any number of rule slices into one, preserving order and tolerating nil or
// empty groups.
func Flatten(groups ...[]*Redact) []*Redact {
	flattened := make([]*Redact, 0)
	for _, group := range groups {
		flattened = append(flattened, group...)
	}
	return flattened
}
