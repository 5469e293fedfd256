package errorinfo

import (
	"fmt"
)

// Group is the grouped error structure behind the global table: error
// counts keyed by column then pie variable, subgroup breakdowns, and a
// running total.
type Group struct {
	Errors map[string]map[string]int
	Sub    map[string]*Group
	Total  int
}

func newGroup() *Group {
	return &Group{
		Errors: make(map[string]map[string]int),
		Sub:    make(map[string]*Group),
	}
}

func (g *Group) add(col, pievar string, num int) {
	if g.Errors[col] == nil {
		g.Errors[col] = make(map[string]int)
	}
	g.Errors[col][pievar] += num
	g.Total += num
}

// Errors gathers every error row grouped by the global table's row
// axis for the chosen pie variable.
func (i *Info) Errors(pievar string) (map[string]*Group, error) {
	pievar = NormalizePievar(pievar)
	rowname, colname := PieAxes(pievar)

	rows, err := i.query(fmt.Sprintf(
		"SELECT numbererrors, %s, %s, %s FROM workflows ORDER BY %s ASC, %s ASC, %s ASC",
		rowname, colname, pievar, rowname, colname, pievar))
	if err != nil {
		return nil, fmt.Errorf("failed to gather errors: %w", err)
	}
	defer rows.Close()

	output := make(map[string]*Group)

	for rows.Next() {
		var num int
		var row, col, pvar string
		if err := rows.Scan(&num, &row, &col, &pvar); err != nil {
			return nil, err
		}
		if output[row] == nil {
			output[row] = newGroup()
		}
		output[row].add(col, pvar, num)
	}
	return output, rows.Err()
}

// GroupErrors sums an errors structure into larger groups decided by
// the grouping function. Each input subgroup stays reachable under its
// group's Sub map.
func GroupErrors(input map[string]*Group, groupBy func(string) string) map[string]*Group {
	output := make(map[string]*Group)

	for subgroup, values := range input {
		group := groupBy(subgroup)

		if output[group] == nil {
			output[group] = newGroup()
		}
		out := output[group]

		for col, colVal := range values.Errors {
			for pvar, num := range colVal {
				if out.Errors[col] == nil {
					out.Errors[col] = make(map[string]int)
				}
				out.Errors[col][pvar] += num
			}
		}

		out.Sub[subgroup] = values
		out.Total += values.Total
	}

	return output
}

// StepRow is one dense row of a step table on the workflow page.
type StepRow struct {
	Code   string
	Counts []int
}

// StepView is one step's table plus the sites whose columns are all
// zero and can be skipped when rendering.
type StepView struct {
	Step      string
	Rows      []StepRow
	SkipSites []string
	SkipIndex []int
}

// WorkflowView is everything the workflow page needs: one table per
// step plus the shared axes.
type WorkflowView struct {
	Workflow  string
	Steps     []StepView
	AllErrors []string
	AllSites  []string
}

// SeeWorkflow gathers the error information for a single workflow.
func (i *Info) SeeWorkflow(workflow string) (*WorkflowView, error) {
	codes := i.Codes()
	sites := i.Sites()

	view := &WorkflowView{
		Workflow:  workflow,
		AllErrors: codes,
		AllSites:  sites,
	}

	for _, step := range i.StepList(workflow) {
		table, err := i.DenseStepTable(step)
		if err != nil {
			return nil, err
		}

		sv := StepView{Step: step}
		for r, code := range codes {
			sv.Rows = append(sv.Rows, StepRow{Code: code, Counts: table[r]})
		}

		for c, site := range sites {
			total := 0
			for _, row := range table {
				total += row[c]
			}
			if total == 0 {
				sv.SkipIndex = append(sv.SkipIndex, c)
				sv.SkipSites = append(sv.SkipSites, site)
			}
		}

		view.Steps = append(view.Steps, sv)
	}

	return view, nil
}
