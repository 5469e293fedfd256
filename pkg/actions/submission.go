package actions

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/gridboard/gridboard/pkg/types"
)

// FieldName builds the namespaced control name for a block index and
// field, matching what the form renderer emits.
func FieldName(index int, field string) string {
	return fmt.Sprintf("param_%d_%s", index, field)
}

// ParseSubmission reconstructs an ActionRecord from a posted parameter
// form. For per-task actions the parameter map is keyed by task name,
// one entry per task in task-list order; otherwise a single entry keyed
// by the workflow name holds block index 0.
func ParseSubmission(workflow string, action Action, tasks []string, form url.Values) *types.ActionRecord {
	spec := Spec(action)

	params := make(map[string]types.TaskParameters)

	if action.PerTask() {
		for i, task := range tasks {
			params[task] = blockValues(spec, i, form)
		}
	} else {
		params[workflow] = blockValues(spec, 0, form)
	}

	return &types.ActionRecord{
		ID:          uuid.New().String(),
		Workflow:    workflow,
		Action:      action.String(),
		Operator:    form.Get("operator"),
		Reasons:     form["reason"],
		Parameters:  params,
		SubmittedAt: time.Now().UTC(),
	}
}

func blockValues(spec ParameterSpec, index int, form url.Values) types.TaskParameters {
	values := make(types.TaskParameters)
	for _, field := range spec.Fields() {
		if v := form.Get(FieldName(index, field)); v != "" {
			values[field] = v
		}
	}
	return values
}
