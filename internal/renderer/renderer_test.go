package renderer

import (
	"bytes"
	"errors"
	"strings"
	"syscall"
	"testing"

	"github.com/mcncl/jqk/internal/annotator"
	"github.com/mcncl/jqk/internal/parser"
	"github.com/mcncl/jqk/internal/style"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const japan = `{"japan": [{"name": "tokyo", "population": "14M"}, {"name": "osaka", "population": "2.7M"}]}`

func annotate(t *testing.T, input string) annotator.Node {
	t.Helper()
	value, err := parser.ParseString(input)
	require.NoError(t, err)
	return annotator.Annotate(value, "")
}

func TestRenderPretty_Japan(t *testing.T) {
	expected := `{
  .japan: [
    {
      .japan[0].name: "tokyo",
      .japan[0].population: "14M"
    },
    {
      .japan[1].name: "osaka",
      .japan[1].population: "2.7M"
    }
  ]
}
`
	assert.Equal(t, expected, NewRenderer(ModePretty, 2).String(annotate(t, japan)))
}

func TestRenderPretty_RootArray(t *testing.T) {
	input := `[{"name": "tokyo", "population": "14M"}, {"name": "osaka", "population": "2.7M"}]`
	expected := `[
  {
    .[0].name: "tokyo",
    .[0].population: "14M"
  },
  {
    .[1].name: "osaka",
    .[1].population: "2.7M"
  }
]
`
	assert.Equal(t, expected, NewRenderer(ModePretty, 2).String(annotate(t, input)))
}

func TestRenderPretty_ScalarKinds(t *testing.T) {
	input := `{"s": "x\"y", "n": -1.50, "t": true, "f": false, "z": null, "a": [1, "two"]}`
	expected := `{
  .s: "x\"y",
  .n: -1.50,
  .t: true,
  .f: false,
  .z: null,
  .a: [
    1,
    "two"
  ]
}
`
	assert.Equal(t, expected, NewRenderer(ModePretty, 2).String(annotate(t, input)))
}

func TestRenderPretty_EmptyContainers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`{}`, "{}\n"},
		{`[]`, "[]\n"},
		{`{"a": {}, "b": []}`, "{\n  .a: {},\n  .b: []\n}\n"},
		{`[[], {}]`, "[\n  [],\n  {}\n]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewRenderer(ModePretty, 2).String(annotate(t, tt.input)))
		})
	}
}

func TestRenderPretty_RootScalar(t *testing.T) {
	assert.Equal(t, "42\n", NewRenderer(ModePretty, 2).String(annotate(t, `42`)))
	assert.Equal(t, "\"hi\"\n", NewRenderer(ModePretty, 2).String(annotate(t, `"hi"`)))
	assert.Equal(t, "null\n", NewRenderer(ModePretty, 2).String(annotate(t, `null`)))
}

func TestRenderPretty_Indent(t *testing.T) {
	expected := "{\n    .a: [\n        1\n    ]\n}\n"
	assert.Equal(t, expected, NewRenderer(ModePretty, 4).String(annotate(t, `{"a":[1]}`)))

	// Non-positive widths fall back to the default.
	expected = "{\n  .a: 1\n}\n"
	assert.Equal(t, expected, NewRenderer(ModePretty, 0).String(annotate(t, `{"a":1}`)))
}

func TestRenderPretty_AlwaysExpanded(t *testing.T) {
	out := NewRenderer(ModePretty, 2).String(annotate(t, `{"p":[1,2,3]}`))

	assert.Equal(t, "{\n  .p: [\n    1,\n    2,\n    3\n  ]\n}\n", out)
}

func TestRenderPretty_Color(t *testing.T) {
	var buf bytes.Buffer
	w := style.NewWriter(&buf, style.PaletteDefault, true)
	require.NoError(t, NewRenderer(ModePretty, 2).RenderPretty(w, annotate(t, `{"a":"x","n":1}`)))

	key := func(s string) string { return style.PaletteDefault.Key + s + style.Reset }
	brace := func(s string) string { return style.PaletteDefault.Brace + s + style.Reset }
	expected := brace("{") + "\n" +
		"  " + key(".a") + ": " + style.PaletteDefault.String + `"x"` + style.Reset + ",\n" +
		"  " + key(".n") + ": " + style.PaletteDefault.Number + "1" + style.Reset + "\n" +
		brace("}") + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestRenderPretty_NoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	w := style.NewWriter(&buf, style.PaletteDefault, false)
	require.NoError(t, NewRenderer(ModePretty, 2).Render(w, annotate(t, japan)))

	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderList_Scenario(t *testing.T) {
	input := `{"japan":[{"name":"tokyo"},{"name":"osaka"}]}`

	assert.Equal(t, ".japan\n.japan[0].name\n.japan[1].name\n", NewRenderer(ModeList, 2).String(annotate(t, input)))
}

func TestRenderList_OneLinePerKey(t *testing.T) {
	out := NewRenderer(ModeList, 2).String(annotate(t, japan))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Equal(t, []string{
		".japan",
		".japan[0].name",
		".japan[0].population",
		".japan[1].name",
		".japan[1].population",
	}, lines)
}

func TestRenderList_NoObjects(t *testing.T) {
	for _, input := range []string{`42`, `"str"`, `[1, 2, [3]]`, `[]`, `{}`} {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, "", NewRenderer(ModeList, 2).String(annotate(t, input)))
		})
	}
}

func TestRenderList_ColorOnlyOnKeys(t *testing.T) {
	var buf bytes.Buffer
	w := style.NewWriter(&buf, style.PaletteJQ, true)
	require.NoError(t, NewRenderer(ModeList, 2).Render(w, annotate(t, `{"a":{"b":"x"}}`)))

	expected := style.PaletteJQ.Key + ".a" + style.Reset + "\n" +
		style.PaletteJQ.Key + ".a.b" + style.Reset + "\n"
	assert.Equal(t, expected, buf.String())
}

func TestRender_Deterministic(t *testing.T) {
	input := `{"b":1,"a":{"d":[{"c":null}],"c":true},"e":[[],{}]}`
	r := NewRenderer(ModePretty, 2)

	first := r.String(annotate(t, input))
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, r.String(annotate(t, input)))
	}
}

type closedPipe struct {
	writes int
}

func (c *closedPipe) Write(p []byte) (int, error) {
	c.writes++
	return 0, syscall.EPIPE
}

func TestRender_StopsOnClosedOutput(t *testing.T) {
	// Large enough to overflow the writer's buffer several times.
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 5000; i++ {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`{"key":"value"}`)
	}
	sb.WriteString("]")

	pipe := &closedPipe{}
	w := style.NewWriter(pipe, style.Palette{}, false)
	err := NewRenderer(ModePretty, 2).Render(w, annotate(t, sb.String()))

	require.Error(t, err)
	assert.True(t, errors.Is(err, syscall.EPIPE))
	assert.Equal(t, 1, pipe.writes)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "pretty", ModePretty.String())
	assert.Equal(t, "list", ModeList.String())
	assert.Equal(t, ModeList, NewRenderer(ModeList, 2).Mode())
}
