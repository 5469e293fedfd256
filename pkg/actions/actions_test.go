package actions

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw      string
		expected Action
	}{
		{"clone", ActionClone},
		{"recover", ActionRecover},
		{"investigate", ActionInvestigate},
		{"bogus", ActionOther},
		{"", ActionOther},
		{"CLONE", ActionOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Parse(tt.raw), "raw=%q", tt.raw)
	}
}

func TestSpecClone(t *testing.T) {
	spec := Spec(ActionClone)

	require.Len(t, spec.Groups, 1)
	assert.Equal(t, "splitting", spec.Groups[0].Key)
	assert.Equal(t, []string{"2x", "3x", "max"}, spec.Groups[0].Options)
	assert.Equal(t, []string{"memory"}, spec.Texts)
}

func TestSpecRecover(t *testing.T) {
	spec := Spec(ActionRecover)

	require.Len(t, spec.Groups, 2)
	assert.Equal(t, "xrootd", spec.Groups[0].Key)
	assert.Equal(t, []string{"enabled", "disabled"}, spec.Groups[0].Options)
	assert.Equal(t, "splitting", spec.Groups[1].Key)
	assert.Equal(t, []string{"2x", "3x", "max"}, spec.Groups[1].Options)
	assert.Equal(t, []string{"memory"}, spec.Texts)
}

func TestSpecInvestigate(t *testing.T) {
	spec := Spec(ActionInvestigate)

	assert.Empty(t, spec.Groups)
	assert.Equal(t, []string{"other"}, spec.Texts)
}

func TestSpecUnknownIsEmpty(t *testing.T) {
	spec := Spec(ActionOther)

	assert.Empty(t, spec.Groups)
	assert.Empty(t, spec.Texts)
}

func TestFieldsOrder(t *testing.T) {
	// Groups come before texts, matching rendered block order
	assert.Equal(t, []string{"xrootd", "splitting", "memory"}, Spec(ActionRecover).Fields())
	assert.Equal(t, []string{"splitting", "memory"}, Spec(ActionClone).Fields())
}

func TestParseSubmissionRecover(t *testing.T) {
	tasks := []string{"/a/b/Task1", "/a/b/Task2"}

	form := url.Values{}
	form.Set("operator", "alice")
	form.Add("reason", "stuck jobs")
	form.Set("param_0_memory", "4000")
	form.Set("param_0_xrootd", "enabled")
	form.Set("param_1_splitting", "max")

	rec := ParseSubmission("workflow1", ActionRecover, tasks, form)

	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "workflow1", rec.Workflow)
	assert.Equal(t, "recover", rec.Action)
	assert.Equal(t, "alice", rec.Operator)
	assert.Equal(t, []string{"stuck jobs"}, rec.Reasons)

	require.Len(t, rec.Parameters, 2)
	assert.Equal(t, "4000", rec.Parameters["/a/b/Task1"]["memory"])
	assert.Equal(t, "enabled", rec.Parameters["/a/b/Task1"]["xrootd"])
	assert.Equal(t, "max", rec.Parameters["/a/b/Task2"]["splitting"])
	// Unfilled controls are omitted, not stored as empty strings
	_, ok := rec.Parameters["/a/b/Task2"]["memory"]
	assert.False(t, ok)
}

func TestParseSubmissionClone(t *testing.T) {
	form := url.Values{}
	form.Set("param_0_splitting", "2x")
	form.Set("param_0_memory", "8000")

	rec := ParseSubmission("workflow1", ActionClone, nil, form)

	require.Len(t, rec.Parameters, 1)
	assert.Equal(t, "2x", rec.Parameters["workflow1"]["splitting"])
	assert.Equal(t, "8000", rec.Parameters["workflow1"]["memory"])
}
