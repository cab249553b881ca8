package logstruct_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bjaus/logstruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeadingStyle(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		input   string
		want    logstruct.HeadingStyle
		wantErr bool
	}{
		"heading":         {input: "heading", want: logstruct.StyleHeading},
		"subheading":      {input: "subheading", want: logstruct.StyleSubheading},
		"section":         {input: "section", want: logstruct.StyleSection},
		"section_heading": {input: "section_heading", want: logstruct.StyleSection},
		"upper":           {input: " Heading ", want: logstruct.StyleHeading},
		"unknown":         {input: "banner", wantErr: true},
		"empty":           {input: "", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := logstruct.ParseHeadingStyle(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, logstruct.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTableStyle(t *testing.T) {
	t.Parallel()
	for _, s := range logstruct.TableStyles() {
		got, err := logstruct.ParseTableStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := logstruct.ParseTableStyle("fancy")
	assert.ErrorIs(t, err, logstruct.ErrUnsupportedFormat)
}

func TestTableStylesIsCopy(t *testing.T) {
	t.Parallel()
	styles := logstruct.TableStyles()
	styles[0] = "changed"
	assert.Equal(t, logstruct.TablePipe, logstruct.TableStyles()[0])
}

func TestResolveDefaults(t *testing.T) {
	t.Parallel()
	want := logstruct.Node{HeadingStyle: logstruct.StyleSection, TakeAll: true}
	tests := map[string]struct {
		cfg  any
		path []string
	}{
		"nil graph":         {cfg: nil, path: []string{"a"}},
		"empty graph":       {cfg: logstruct.Graph{}, path: []string{"a", "b"}},
		"non-mapping":       {cfg: 42, path: []string{"a"}},
		"missing key":       {cfg: logstruct.Graph{"b": logstruct.Graph{"skip": true}}, path: []string{"a"}},
		"missing deep key":  {cfg: logstruct.Graph{"a": logstruct.Graph{"skip": true}}, path: []string{"a", "x", "y"}},
		"through leaf":      {cfg: logstruct.Graph{"a": "leaf"}, path: []string{"a", "b"}},
		"empty path on nil": {cfg: nil},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			node := logstruct.ParseGraph(tt.cfg).Resolve(tt.path...)
			assert.Equal(t, want, node)
		})
	}
}

func TestResolveSettings(t *testing.T) {
	t.Parallel()
	tree := logstruct.ParseGraph(logstruct.Graph{
		"people": logstruct.Graph{
			"skip_empty":    true,
			"heading":       "People",
			"heading_style": "subheading",
			"take":          3,
			"columns":       []any{"first_name", map[string]any{"key": "age"}},
		},
		"complex": map[string]any{
			"ignore": true,
			"extra": map[string]any{
				"heading_type": logstruct.StyleHeading,
				"take":         "all",
			},
		},
	})

	people := tree.Resolve("people")
	assert.True(t, people.SkipEmpty)
	assert.False(t, people.Skip)
	assert.Equal(t, "People", people.Heading)
	assert.Equal(t, logstruct.StyleSubheading, people.HeadingStyle)
	assert.Equal(t, 3, people.Take)
	assert.False(t, people.TakeAll)
	assert.Equal(t, []any{"first_name", map[string]any{"key": "age"}}, people.Columns)

	assert.True(t, tree.Resolve("complex").Skip)

	extra := tree.Resolve("complex", "extra")
	assert.Equal(t, logstruct.StyleHeading, extra.HeadingStyle)
	assert.True(t, extra.TakeAll)
	assert.Equal(t, 2, tree.Len())
}

func TestResolveTakeValues(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		take     any
		wantTake int
		wantAll  bool
	}{
		"int":      {take: 2, wantTake: 2},
		"zero":     {take: 0, wantTake: 0},
		"int64":    {take: int64(5), wantTake: 5},
		"float":    {take: 4.0, wantTake: 4},
		"all":      {take: "all", wantAll: true},
		"negative": {take: -1, wantAll: true},
		"bool":     {take: true, wantAll: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			node := logstruct.ParseGraph(logstruct.Graph{"a": logstruct.Graph{"take": tt.take}}).Resolve("a")
			assert.Equal(t, tt.wantTake, node.Take)
			assert.Equal(t, tt.wantAll, node.TakeAll)
		})
	}
}

func TestResolveFunctions(t *testing.T) {
	t.Parallel()
	tree := logstruct.ParseGraph(logstruct.Graph{
		"a": logstruct.Graph{
			"transform": func(v any) any { return "t" },
			"filter":    func(v any) bool { return v == 1 },
			"sort":      func(a, b any) int { return 0 },
		},
		"b": logstruct.Graph{
			"transform": "not a function",
			"filter":    42,
			"sort_by":   "-age",
		},
	})

	a := tree.Resolve("a")
	require.NotNil(t, a.Transform)
	require.NotNil(t, a.Filter)
	require.NotNil(t, a.Sort)
	assert.Equal(t, "t", a.Transform(nil))
	assert.True(t, a.Filter(1))

	b := tree.Resolve("b")
	assert.Nil(t, b.Transform)
	assert.Nil(t, b.Filter)
	require.NotNil(t, b.Sort)
	young := logstruct.NewRecord("age", 20)
	old := logstruct.NewRecord("age", 60)
	assert.Negative(t, b.Sort(old, young))
}

func TestResolveKeyCollision(t *testing.T) {
	t.Parallel()
	tree := logstruct.ParseGraph(logstruct.Graph{
		"complex": logstruct.Graph{"heading": "Complex", "take": 2},
	})
	assert.Equal(t, "Complex", tree.Resolve("complex").Heading)
	// A data field named like a setting resolves to the null node.
	assert.Equal(t, logstruct.Node{HeadingStyle: logstruct.StyleSection, TakeAll: true}, tree.Resolve("complex", "heading"))
	assert.Equal(t, logstruct.Node{HeadingStyle: logstruct.StyleSection, TakeAll: true}, tree.Resolve("complex", "take"))
}

func TestCompareValues(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		a, b any
		want int
	}{
		"ints":          {a: 1, b: 2, want: -1},
		"mixed numbers": {a: 2.5, b: int64(2), want: 1},
		"equal":         {a: "x", b: "x", want: 0},
		"strings":       {a: "b", b: "a", want: 1},
		"bools":         {a: false, b: true, want: -1},
		"nil first":     {a: nil, b: 0, want: -1},
		"nil last":      {a: "a", b: nil, want: 1},
		"both nil":      {a: nil, b: nil, want: 0},
		"fallback":      {a: true, b: "z", want: -1},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logstruct.CompareValues(tt.a, tt.b))
		})
	}
}

func TestLoadGraph(t *testing.T) {
	t.Parallel()
	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		g, err := logstruct.LoadGraph(filepath.Join("testdata", "graph.yaml"))
		require.NoError(t, err)
		node := logstruct.ParseGraph(g).Resolve("people")
		assert.Equal(t, "People", node.Heading)
		assert.Equal(t, logstruct.StyleSubheading, node.HeadingStyle)
		assert.Equal(t, 3, node.Take)
		assert.Len(t, node.Columns, 3)
		assert.NotNil(t, node.Sort)
	})
	t.Run("toml", func(t *testing.T) {
		t.Parallel()
		g, err := logstruct.LoadGraph(filepath.Join("testdata", "graph.toml"))
		require.NoError(t, err)
		tree := logstruct.ParseGraph(g)
		assert.True(t, tree.Resolve("rails").Skip)
		node := tree.Resolve("people")
		assert.Equal(t, "People", node.Heading)
		assert.Equal(t, []any{"first_name", "active"}, node.Columns)
	})
	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "graph.ini")
		require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))
		_, err := logstruct.LoadGraph(path)
		assert.ErrorIs(t, err, logstruct.ErrUnsupportedFormat)
	})
	t.Run("malformed", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "graph.yaml")
		require.NoError(t, os.WriteFile(path, []byte("people: [unclosed"), 0o644))
		_, err := logstruct.LoadGraph(path)
		assert.Error(t, err)
	})
	t.Run("missing", func(t *testing.T) {
		t.Parallel()
		_, err := logstruct.LoadGraph(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestRenderWithLoadedGraph(t *testing.T) {
	t.Parallel()
	t.Run("yaml", func(t *testing.T) {
		t.Parallel()
		g, err := logstruct.LoadGraph(filepath.Join("testdata", "graph.yaml"))
		require.NoError(t, err)
		r := render(t, loadSimple(t), logstruct.Options{Graph: g})
		dashes := "--------------------------------------------------------------------------------"
		assert.Equal(t, []string{
			dashes,
			"People",
			dashes,
			"FIRST_NAME | Age | FULL_NAME   ",
			"-----------|-----|-------------",
			"david      | 45  | david cruwys",
			"joh        | 38  | joh doe     ",
			"lisa       | 23  | lisa lou    ",
			"================================================================================",
		}, r.CleanLines())
	})
	t.Run("toml", func(t *testing.T) {
		t.Parallel()
		g, err := logstruct.LoadGraph(filepath.Join("testdata", "graph.toml"))
		require.NoError(t, err)
		r := render(t, loadSimple(t), logstruct.Options{Graph: g, LineWidth: 20})
		assert.Equal(t, []string{
			"[ People ]----------",
			"FIRST_NAME | ACTIVE",
			"-----------|-------",
			"amanda     | false ",
			"david      | true  ",
			"joh        | true  ",
			"lisa       | true  ",
			"====================",
		}, r.CleanLines())
	})
}
