package forms

import (
	"strings"

	"github.com/gridboard/gridboard/pkg/actions"
)

// RadioGroup is one rendered choice group: a label, the shared control
// name, and the exclusive option values in display order.
type RadioGroup struct {
	Key     string
	Control string
	Options []string
}

// TextField is one rendered free-text input, pre-filled with Value when
// a default was configured for the field.
type TextField struct {
	Name    string
	Control string
	Value   string
}

// Block is one parameter block. For per-task actions each block carries
// the task it belongs to, a heading derived from the task name, and
// controls namespaced by the block index. Other actions produce a
// single block with index 0 and no heading.
type Block struct {
	Index   int
	Task    string
	Heading string
	Groups  []RadioGroup
	Texts   []TextField
}

// Plan decides which parameter blocks a selected action renders. It is
// a pure function of its inputs: the same action, task list, and
// defaults always yield the same blocks, so re-rendering replaces
// rather than accumulates. Unknown actions degrade to a single block
// with no controls.
func Plan(action actions.Action, tasks []string, defaults map[string]string) []Block {
	spec := actions.Spec(action)

	if action.PerTask() {
		blocks := make([]Block, 0, len(tasks))
		for i, task := range tasks {
			b := buildBlock(spec, i, defaults)
			b.Task = task
			b.Heading = TaskDisplayName(task)
			blocks = append(blocks, b)
		}
		return blocks
	}

	return []Block{buildBlock(spec, 0, defaults)}
}

func buildBlock(spec actions.ParameterSpec, index int, defaults map[string]string) Block {
	block := Block{Index: index}

	for _, g := range spec.Groups {
		block.Groups = append(block.Groups, RadioGroup{
			Key:     g.Key,
			Control: actions.FieldName(index, g.Key),
			Options: g.Options,
		})
	}

	for _, name := range spec.Texts {
		block.Texts = append(block.Texts, TextField{
			Name:    name,
			Control: actions.FieldName(index, name),
			Value:   defaults[name],
		})
	}

	return block
}

// TaskDisplayName shortens a fully qualified task name for headings by
// dropping its first two path segments. Task names follow the fixed
// /request/workflow/... scheme of the upstream naming convention; names
// too short for that scheme pass through unchanged.
func TaskDisplayName(task string) string {
	segments := strings.Split(strings.TrimPrefix(task, "/"), "/")
	if len(segments) <= 2 {
		return task
	}
	return strings.Join(segments[2:], "/")
}
