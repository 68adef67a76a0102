package redact

// DefaultKeyRedactions returns the built-in rule set, in application order. Each rule rewrites one
// hardcoded-API-key idiom so the literal key value is replaced by an environment-variable lookup.
// Matching is case-sensitive and deliberately narrow: a key-like string in any other surrounding
// idiom is left alone. Secret captures stop at the closing quote and never cross a line boundary.
//
// The environment-variable names in the replacement text configure the program being scrubbed,
// not this tool.
func DefaultKeyRedactions() ([]*Redact, error) {
	defaults := make([]*Redact, 0)

	redactions := []struct {
		id      string
		matcher string
		replace string
	}{
		{
			id:      "anthropic-node-option",
			matcher: `anthropicApiKey: process\.env\.ANTHROPIC_API_KEY \|\| 'sk-ant-[^'\n]+',`,
			replace: `anthropicApiKey: process.env.ANTHROPIC_API_KEY || '',`,
		},
		{
			id:      "openai-node-option",
			matcher: `openaiApiKey: process\.env\.OPENAI_API_KEY \|\| 'sk-proj-[^'\n]+',`,
			replace: `openaiApiKey: process.env.OPENAI_API_KEY || '',`,
		},
		{
			id:      "openai-python-assignment",
			matcher: `OPENAI_API_KEY\s*=\s*'sk-proj-[^'\n]+'`,
			replace: `OPENAI_API_KEY=os.environ.get('OPENAI_API_KEY', '')`,
		},
		{
			id:      "openai-node-const",
			matcher: `const apiKey = 'sk-proj-[^'\n]+';`,
			replace: `const apiKey = process.env.OPENAI_API_KEY || '';`,
		},
	}
	for _, redaction := range redactions {
		red, err := New(redaction.matcher, redaction.id, redaction.replace)
		if err != nil {
			return nil, err
		}
		defaults = append(defaults, red)
	}
	return defaults, nil
}
