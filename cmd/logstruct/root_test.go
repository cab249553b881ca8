package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bjaus/logstruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

var simplePath = filepath.Join("..", "..", "testdata", "simple.json")

func TestRenderCommand(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args []string
		want []string
		not  []string
	}{
		"defaults": {
			args: []string{"render", simplePath},
			want: []string{"rails                         : 4", "FIRST_NAME | LAST_NAME | AGE | ACTIVE", strings.Repeat("=", 80)},
		},
		"yaml graph": {
			args: []string{"render", simplePath, "-g", filepath.Join("..", "..", "testdata", "graph.yaml")},
			want: []string{"FIRST_NAME | Age | FULL_NAME   "},
			not:  []string{"rails"},
		},
		"title and width": {
			args: []string{"render", simplePath, "-t", "Report", "--title-style", "section", "-w", "20"},
			want: []string{"[ Report ]----------", strings.Repeat("=", 20)},
		},
		"key width and indent": {
			args: []string{"render", simplePath, "--key-width", "8", "--indent=.."},
			want: []string{"rails   : 4", "..some  : data"},
		},
		"show count": {
			args: []string{"render", simplePath, "--show-count"},
			want: []string{"people count                  : 4"},
		},
		"table style": {
			args: []string{"render", simplePath, "--table-style", "ascii"},
			want: []string{"| FIRST_NAME | LAST_NAME | AGE | ACTIVE |"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.NotContains(t, out, "\x1b[")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, n := range tt.not {
				assert.NotContains(t, out, n)
			}
		})
	}
}

func TestRenderCommandStdin(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "name: David\nage: 45\n", "render")
	require.NoError(t, err)
	assert.Equal(t, "name                          : David\nage                           : 45\n"+strings.Repeat("=", 80)+"\n", out)
}

func TestRenderCommandNormalize(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, `{"outer": {"inner": 1}}`, "render", "--normalize")
	require.NoError(t, err)
	assert.Contains(t, out, "outer\n  inner                       : 1\n")
}

func TestRenderCommandOutputFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.txt")
	out, _, err := execute(t, "", "render", simplePath, "-o", path, "-q")
	require.NoError(t, err)
	assert.Empty(t, out)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "rails                         : 4")
}

func TestRenderCommandErrors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		stdin string
		args  []string
	}{
		"missing file":      {args: []string{"render", "nope.json"}},
		"bad title style":   {args: []string{"render", simplePath, "--title-style", "banner"}},
		"bad table style":   {args: []string{"render", simplePath, "--table-style", "fancy"}},
		"bad graph file":    {args: []string{"render", simplePath, "-g", "graph.ini"}},
		"scalar document":   {stdin: "42", args: []string{"render"}},
		"malformed":         {stdin: "{", args: []string{"render"}},
		"too many args":     {args: []string{"render", "a", "b"}},
		"bad sample format": {args: []string{"sample", simplePath, "-f", "xml"}},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, _, err := execute(t, tt.stdin, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRenderCommandNothingToRender(t *testing.T) {
	t.Parallel()
	out, errOut, err := execute(t, "", "render")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "nothing to render")
}

func TestSampleCommand(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args []string
		want string
	}{
		"yaml": {args: []string{"sample", simplePath}, want: "heading: people"},
		"toml": {args: []string{"sample", simplePath, "--format", "toml"}, want: "[people]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
		})
	}
}

func TestOutputTargets(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []logstruct.OutputTarget{logstruct.Console}, outputTargets(renderFlags{}))
	assert.Equal(t, []logstruct.OutputTarget{logstruct.Console, logstruct.File}, outputTargets(renderFlags{outputFile: "x"}))
	assert.Equal(t, []logstruct.OutputTarget{logstruct.File}, outputTargets(renderFlags{outputFile: "x", quiet: true}))
	assert.Equal(t, []logstruct.OutputTarget{logstruct.None}, outputTargets(renderFlags{quiet: true}))
}

func TestNewLoggerLevels(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		verbosity int
		info      bool
		debug     bool
	}{
		"quiet":   {verbosity: 0},
		"info":    {verbosity: 1, info: true},
		"debug":   {verbosity: 2, info: true, debug: true},
		"tracing": {verbosity: 3, info: true, debug: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.verbosity, true)
			logger.Info().Msg("info-line")
			logger.Debug().Msg("debug-line")
			assert.Equal(t, tt.info, strings.Contains(buf.String(), "info-line"))
			assert.Equal(t, tt.debug, strings.Contains(buf.String(), "debug-line"))
		})
	}
}
