package forms

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridboard/gridboard/pkg/actions"
)

func renderToString(t *testing.T, action actions.Action, tasks []string, defaults map[string]string) string {
	t.Helper()

	var sb strings.Builder
	err := Parameters(action, tasks, defaults).Render(context.Background(), &sb)
	require.NoError(t, err)
	return sb.String()
}

func TestRenderClone(t *testing.T) {
	out := renderToString(t, actions.ActionClone, nil, nil)

	assert.Equal(t, 1, strings.Count(out, `<div class="param-block">`))
	assert.Contains(t, out, `name="param_0_splitting" value="2x"`)
	assert.Contains(t, out, `name="param_0_splitting" value="3x"`)
	assert.Contains(t, out, `name="param_0_splitting" value="max"`)
	assert.Contains(t, out, `name="param_0_memory" value=""`)
	assert.NotContains(t, out, "checked")
	assert.NotContains(t, out, "<h4")
}

func TestRenderRecoverScenario(t *testing.T) {
	tasks := []string{"/a/b/Task1", "/a/b/Task2"}

	out := renderToString(t, actions.ActionRecover, tasks, nil)

	assert.Equal(t, 2, strings.Count(out, `<div class="param-block">`))

	// Headings double as in-page anchors
	assert.Contains(t, out, `<h4 id="Task1"><a href="#Task1">Task1</a></h4>`)
	assert.Contains(t, out, `<h4 id="Task2"><a href="#Task2">Task2</a></h4>`)

	for _, name := range []string{
		"param_0_memory", "param_0_xrootd", "param_0_splitting",
		"param_1_memory", "param_1_xrootd", "param_1_splitting",
	} {
		assert.Contains(t, out, `name="`+name+`"`, "missing control %s", name)
	}

	// Each splitting group offers exactly the three options
	assert.Equal(t, 2, strings.Count(out, `value="max"`))
	assert.Equal(t, 2, strings.Count(out, `value="enabled"`))

	// Choice groups precede free-text fields within a block
	xrootd := strings.Index(out, "param_0_xrootd")
	splitting := strings.Index(out, "param_0_splitting")
	memory := strings.Index(out, "param_0_memory")
	assert.Less(t, xrootd, splitting)
	assert.Less(t, splitting, memory)
}

func TestRenderUnknownAction(t *testing.T) {
	out := renderToString(t, actions.Parse("bogus"), nil, nil)

	assert.Equal(t, 1, strings.Count(out, `<div class="param-block">`))
	assert.NotContains(t, out, "<input")
}

func TestRenderDefaultValue(t *testing.T) {
	out := renderToString(t, actions.ActionClone, nil, map[string]string{"memory": "4000"})
	assert.Contains(t, out, `name="param_0_memory" value="4000"`)
}

func TestRenderIdempotent(t *testing.T) {
	tasks := []string{"/a/b/Task1"}
	first := renderToString(t, actions.ActionRecover, tasks, nil)
	second := renderToString(t, actions.ActionRecover, tasks, nil)
	assert.Equal(t, first, second)
}

func TestRenderEscapesTaskNames(t *testing.T) {
	out := renderToString(t, actions.ActionRecover, []string{`/a/b/<Task>`}, nil)
	assert.Contains(t, out, "&lt;Task&gt;")
	assert.NotContains(t, out, "<Task>")
}
