package forms

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/gridboard/gridboard/pkg/actions"
)

// Parameters returns the full parameter form for the selected action as
// a renderable component. The output replaces whatever the container
// held before, so rendering is idempotent for fixed inputs.
func Parameters(action actions.Action, tasks []string, defaults map[string]string) templ.Component {
	blocks := Plan(action, tasks, defaults)

	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, block := range blocks {
			if err := renderBlock(ctx, w, block); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderBlock(_ context.Context, w io.Writer, block Block) error {
	if block.Heading != "" {
		name := html.EscapeString(block.Heading)
		if _, err := fmt.Fprintf(w, "<h4 id=%q><a href=\"#%s\">%s</a></h4>\n", name, name, name); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "<div class=\"param-block\">\n"); err != nil {
		return err
	}

	for _, group := range block.Groups {
		if err := renderRadioGroup(w, group); err != nil {
			return err
		}
	}

	for _, field := range block.Texts {
		if err := renderTextField(w, field); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</div>\n")
	return err
}

func renderRadioGroup(w io.Writer, group RadioGroup) error {
	if _, err := fmt.Fprintf(w, "<p><b>%s</b><br>\n", html.EscapeString(group.Key)); err != nil {
		return err
	}

	// No option is pre-selected
	for _, option := range group.Options {
		escaped := html.EscapeString(option)
		if _, err := fmt.Fprintf(w, "%s <input type=\"radio\" name=%q value=%q>\n",
			escaped, group.Control, escaped); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "</p>\n")
	return err
}

func renderTextField(w io.Writer, field TextField) error {
	_, err := fmt.Fprintf(w, "<p><b>%s</b><br>\n<input type=\"text\" name=%q value=%q>\n</p>\n",
		html.EscapeString(field.Name), field.Control, html.EscapeString(field.Value))
	return err
}
