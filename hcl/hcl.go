// Package hcl maps keyscrub's HCL configuration onto redaction rules.
package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/keyscrub/keyscrub/redact"
)

// HCL is the top level of a keyscrub configuration file.
type HCL struct {
	// SkipDefaultRules drops the built-in rule set so only the file's rule blocks apply.
	SkipDefaultRules bool   `hcl:"skip_default_rules,optional"`
	Rules            []Rule `hcl:"rule,block"`
}

// Rule is one user-defined redaction. Replace must never contain a live credential; when empty it
// falls back to redact.DefaultReplace.
type Rule struct {
	Name    string `hcl:"name,label"`
	ID      string `hcl:"id,optional"`
	Match   string `hcl:"match"`
	Replace string `hcl:"replace,optional"`
}

// Parse takes a file path and decodes the file from disk into HCL types.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, err
	}
	return h, nil
}

// BuildRedactions compiles the config's rule blocks into redactions, preserving file order. An
// invalid matcher fails the whole config rather than silently dropping the rule.
func BuildRedactions(rules []Rule) ([]*redact.Redact, error) {
	redactions := make([]*redact.Redact, 0, len(rules))
	for _, rule := range rules {
		id := rule.ID
		if id == "" {
			id = rule.Name
		}
		red, err := redact.New(rule.Match, id, rule.Replace)
		if err != nil {
			return nil, fmt.Errorf("invalid matcher in rule %q: %w", rule.Name, err)
		}
		redactions = append(redactions, red)
	}
	return redactions, nil
}
