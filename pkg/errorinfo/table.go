package errorinfo

import (
	"fmt"

	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/types"
)

// readinessAll keys the full, ordered entry list in the step table cache.
const readinessAll = types.Readiness("all")

func (i *Info) buildStepTables() error {
	rows, err := i.query(
		`SELECT stepname, sitereadiness, numbererrors, sitename, errorcode FROM workflows
		 ORDER BY errorcode ASC, sitename ASC`)
	if err != nil {
		return fmt.Errorf("failed to build step tables: %w", err)
	}
	defer rows.Close()

	tables := make(map[string]map[types.Readiness][]Entry)

	for rows.Next() {
		var rec types.ErrorRecord
		if err := rows.Scan(&rec.StepName, &rec.Readiness, &rec.NumberErrors, &rec.SiteName, &rec.ErrorCode); err != nil {
			return fmt.Errorf("failed to scan step table row: %w", err)
		}

		if tables[rec.StepName] == nil {
			tables[rec.StepName] = make(map[types.Readiness][]Entry)
		}
		entry := Entry{NumErrors: rec.NumberErrors, Site: rec.SiteName, Code: rec.ErrorCode}
		// 'all' keeps the query order; per-readiness lists are sparse
		tables[rec.StepName][readinessAll] = append(tables[rec.StepName][readinessAll], entry)
		tables[rec.StepName][rec.Readiness] = append(tables[rec.StepName][rec.Readiness], entry)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	i.mu.Lock()
	i.stepTables = tables
	i.mu.Unlock()
	return nil
}

// StepTable returns the sparse entries for one step, ordered by error
// code then site. When readiness statuses are given, only entries for
// sites in those statuses are returned.
func (i *Info) StepTable(step string, match ...types.Readiness) ([]Entry, error) {
	i.mu.Lock()
	ready := i.stepTables != nil
	i.mu.Unlock()

	if !ready {
		log.WithComponent("errorinfo").Debug().Msg("setting up step tables")
		if err := i.buildStepTables(); err != nil {
			return nil, err
		}
	}

	keys := match
	if len(keys) == 0 {
		keys = []types.Readiness{readinessAll}
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	var out []Entry
	for _, key := range keys {
		out = append(out, i.stepTables[step][key]...)
	}
	return out, nil
}

// DenseStepTable expands a step's sparse entries into a full matrix
// with one row per known error code and one column per known site.
func (i *Info) DenseStepTable(step string) ([][]int, error) {
	entries, err := i.StepTable(step)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]map[string]int, len(entries))
	for _, e := range entries {
		if counts[e.Code] == nil {
			counts[e.Code] = make(map[string]int)
		}
		counts[e.Code][e.Site] = e.NumErrors
	}

	codes := i.Codes()
	sites := i.Sites()

	table := make([][]int, len(codes))
	for r, code := range codes {
		row := make([]int, len(sites))
		for c, site := range sites {
			row[c] = counts[code][site]
		}
		table[r] = row
	}
	return table, nil
}

// SparseStepTable returns a step's entries as code -> site -> count.
func (i *Info) SparseStepTable(step string) (map[string]map[string]int, error) {
	entries, err := i.StepTable(step)
	if err != nil {
		return nil, err
	}

	out := make(map[string]map[string]int)
	for _, e := range entries {
		if out[e.Code] == nil {
			out[e.Code] = make(map[string]int)
		}
		out[e.Code][e.Site] = e.NumErrors
	}
	return out, nil
}

// PieAxes gives the row and column axes of the global table for a pie
// chart variable. Invalid variables fall back to errorcode.
func PieAxes(pievar string) (row, col string) {
	switch pievar {
	case "sitename":
		return "stepname", "errorcode"
	case "stepname":
		return "errorcode", "sitename"
	default: // errorcode
		return "stepname", "sitename"
	}
}

// PieTitle maps a pie chart variable to its display name.
func PieTitle(pievar string) string {
	switch pievar {
	case "stepname":
		return "workflow"
	case "sitename":
		return "site name"
	default:
		return "error code"
	}
}

// NormalizePievar maps any requested pie chart variable onto a valid
// one, falling back to errorcode.
func NormalizePievar(pievar string) string {
	switch pievar {
	case "errorcode", "stepname", "sitename":
		return pievar
	default:
		return "errorcode"
	}
}

// NameCount pairs a pie variable value with its error count.
type NameCount struct {
	Name  string
	Count int
}

// MatchingPievars lists the pie variable values and error counts for
// one cell of the global table.
func (i *Info) MatchingPievars(pievar, row, col string) ([]NameCount, error) {
	pievar = NormalizePievar(pievar)
	rowname, colname := PieAxes(pievar)

	rows, err := i.query(
		fmt.Sprintf("SELECT %s, numbererrors FROM workflows WHERE %s=? AND %s=?",
			pievar, rowname, colname),
		row, col)
	if err != nil {
		return nil, fmt.Errorf("failed to query pie variables: %w", err)
	}
	defer rows.Close()

	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}
