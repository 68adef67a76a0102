package redact

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tcs := []struct {
		name    string
		matcher string
		id      string
		replace string
	}{
		{
			name:    "empty optional fields",
			matcher: "/some regex/",
		},
		{
			name:    "set optional fields",
			matcher: "/some other regex/",
			id:      "COOLCOOL",
			replace: "WOWOW",
		},
	}

	for _, tc := range tcs {
		red, err := New(tc.matcher, tc.id, tc.replace)
		assert.NoError(t, err, tc.name)
		assert.NotEqual(t, "", red.ID, tc.name)
		assert.NotEqual(t, "", red.Replace, tc.name)
	}
}

func TestNew_InvalidMatcher(t *testing.T) {
	_, err := New("([", "", "")
	assert.Error(t, err)
}

func TestRedact_Apply(t *testing.T) {
	tcs := []struct {
		name    string
		matcher string
		input   string
		expect  string
	}{
		{
			name:    "empty input",
			matcher: "/myRegex/",
			input:   "",
			expect:  "",
		},
		{
			name:    "redacts once",
			matcher: "myRegex",
			input:   "myRegex",
			expect:  "<REDACTED>",
		},
		{
			name:    "redacts many",
			matcher: "test",
			input:   "test test_test+test-test\n!test ??test",
			expect:  "<REDACTED> <REDACTED>_<REDACTED>+<REDACTED>-<REDACTED>\n!<REDACTED> ??<REDACTED>",
		},
	}
	for _, tc := range tcs {
		red, err := New(tc.matcher, "", "")
		assert.NoError(t, err, tc.name)

		r := strings.NewReader(tc.input)
		buf := new(bytes.Buffer)
		err = red.Apply(buf, r)
		assert.NoError(t, err, tc.name)

		assert.Equal(t, tc.expect, buf.String(), tc.name)
	}
}

func TestApplyMany(t *testing.T) {
	var redactions []*Redact
	matchers := []string{"myRegex", "test", "does not apply"}
	for _, matcher := range matchers {
		red, err := New(matcher, "", "")
		assert.NoError(t, err)
		redactions = append(redactions, red)
	}
	tcs := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "empty input",
			input:  "",
			expect: "",
		},
		{
			name:   "redacts once",
			input:  "myRegex",
			expect: "<REDACTED>",
		},
		{
			name:   "redacts many",
			input:  "test test_test+test-test\n!test ??test",
			expect: "<REDACTED> <REDACTED>_<REDACTED>+<REDACTED>-<REDACTED>\n!<REDACTED> ??<REDACTED>",
		},
	}
	for _, tc := range tcs {
		r := strings.NewReader(tc.input)
		buf := new(bytes.Buffer)
		err := ApplyMany(redactions, buf, r)
		assert.NoError(t, err, tc.name)

		assert.Equal(t, tc.expect, buf.String(), tc.name)
	}
}

// Later rules see the cumulative output of earlier ones, so a chain can rewrite its own rewrites.
func TestApplyMany_Sequential(t *testing.T) {
	redactions := []*Redact{
		newTestRedact(t, "alpha", "beta"),
		newTestRedact(t, "beta", "gamma"),
	}

	buf := new(bytes.Buffer)
	err := ApplyMany(redactions, buf, strings.NewReader("alpha beta"))
	require.NoError(t, err)
	assert.Equal(t, "gamma gamma", buf.String())
}

func TestString(t *testing.T) {
	redactions := []*Redact{newTestRedact(t, "secret", "''")}

	result, err := String("a secret in the middle", redactions)
	require.NoError(t, err)
	assert.Equal(t, "a '' in the middle", result)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dest := filepath.Join(dir, "dest.txt")

	input := "keep this line\nscrub this secret here\n"
	require.NoError(t, os.WriteFile(src, []byte(input), 0o644))

	redactions := []*Redact{newTestRedact(t, "secret", "''")}
	err := File(src, dest, redactions)
	require.NoError(t, err)

	result, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "keep this line\nscrub this '' here\n", string(result))
}

func TestFlatten(t *testing.T) {
	var nilSlice []*Redact
	emptySlice := []*Redact{}
	singleRedact := []*Redact{newTestRedact(t, "matchredact", "foobar")}
	multiRedact := []*Redact{
		newTestRedact(t, "foobar", "baz"),
		newTestRedact(t, "baz", "<REDACTED>"),
	}

	tcs := []struct {
		name   string
		input  [][]*Redact
		expect []*Redact
	}{
		{
			name:   "Flatten should return empty redact slice for nil slice input",
			input:  [][]*Redact{nilSlice},
			expect: make([]*Redact, 0),
		},
		{
			name:   "Flatten should return empty redact slice for empty slice input",
			input:  [][]*Redact{emptySlice},
			expect: make([]*Redact, 0),
		},
		{
			name:   "Flatten should treat a single redact input correctly",
			input:  [][]*Redact{singleRedact},
			expect: singleRedact,
		},
		{
			name:   "Flatten should preserve order across groups",
			input:  [][]*Redact{singleRedact, multiRedact},
			expect: []*Redact{singleRedact[0], multiRedact[0], multiRedact[1]},
		},
		{
			name:   "Flatten should skip nil and empty groups between populated ones",
			input:  [][]*Redact{multiRedact, nilSlice, emptySlice, singleRedact},
			expect: []*Redact{multiRedact[0], multiRedact[1], singleRedact[0]},
		},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			result := Flatten(tc.input...)
			assert.Equal(t, tc.expect, result, tc.name)
		})
	}
}

// newTestRedact wraps redaction creation and fails the test if there's an error
func newTestRedact(t *testing.T, matcher string, replace string) *Redact {
	t.Helper()
	r, err := New(matcher, "", replace)
	require.NoError(t, err, "error creating test redaction")
	return r
}
