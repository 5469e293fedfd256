package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gridboard/gridboard/pkg/actions"
	"github.com/gridboard/gridboard/pkg/errorinfo"
	"github.com/gridboard/gridboard/pkg/events"
	"github.com/gridboard/gridboard/pkg/forms"
	"github.com/gridboard/gridboard/pkg/log"
	"github.com/gridboard/gridboard/pkg/metrics"
	"github.com/gridboard/gridboard/pkg/types"
)

// indexCell is one cell of the global errors table: the summed count
// plus its per-pievar breakdown.
type indexCell struct {
	Total     int
	Breakdown string
}

// indexRow is one row of the global errors table.
type indexRow struct {
	Name  string
	Link  string
	Cells []indexCell
	Total int
}

type indexPage struct {
	Pievar  string
	Title   string
	RowAxis string
	Cols    []string
	Rows    []indexRow
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	info, err := s.cache.Get(true)
	if err != nil {
		s.fail(w, "failed to load error data", err)
		return
	}

	pievar := errorinfo.NormalizePievar(r.URL.Query().Get("pievar"))
	rowAxis, colAxis := errorinfo.PieAxes(pievar)

	groups, err := info.Errors(pievar)
	if err != nil {
		s.fail(w, "failed to gather errors", err)
		return
	}

	allmap := info.AllMap()
	cols := allmap[colAxis]
	pieValues := allmap[pievar]

	page := indexPage{
		Pievar:  pievar,
		Title:   errorinfo.PieTitle(pievar),
		RowAxis: rowAxis,
		Cols:    cols,
	}

	// The allmap rows are already sorted, numerically for error codes
	for _, name := range allmap[rowAxis] {
		group, ok := groups[name]
		if !ok {
			continue
		}
		row := indexRow{Name: name, Total: group.Total}

		if rowAxis == "stepname" {
			row.Link = "/workflow/" + url.PathEscape(workflowOf(name))
		}

		for _, col := range cols {
			row.Cells = append(row.Cells, buildCell(group.Errors[col], pieValues))
		}
		page.Rows = append(page.Rows, row)
	}

	s.render(w, s.indexTpl, page)
}

// buildCell sums one cell's error counts and lists its per-pievar
// breakdown in axis order.
func buildCell(counts map[string]int, pieValues []string) indexCell {
	cell := indexCell{}
	var parts []string
	for _, pv := range pieValues {
		if n := counts[pv]; n > 0 {
			cell.Total += n
			parts = append(parts, fmt.Sprintf("%s: %d", pv, n))
		}
	}
	cell.Breakdown = strings.Join(parts, ", ")
	return cell
}

// stepRender is one step table on the workflow page, with all-zero
// site columns removed.
type stepRender struct {
	Step  string
	Sites []string
	Rows  []rowRender
}

type rowRender struct {
	Code   string
	Counts []int
}

type workflowPage struct {
	Workflow  string
	Steps     []stepRender
	Actions   []actions.Action
	Selected  string
	FormHTML  template.HTML
	Reasons   []*types.Reason
	Submitted bool
}

func (s *Server) handleWorkflow(w http.ResponseWriter, r *http.Request) {
	workflow := r.PathValue("workflow")

	info, err := s.cache.Get(false)
	if err != nil {
		s.fail(w, "failed to load error data", err)
		return
	}

	view, err := info.SeeWorkflow(workflow)
	if err != nil {
		s.fail(w, "failed to build workflow view", err)
		return
	}

	if len(view.Steps) == 0 {
		http.NotFound(w, r)
		return
	}

	page := workflowPage{
		Workflow:  workflow,
		Actions:   actions.Known(),
		Selected:  r.URL.Query().Get("action"),
		Submitted: r.URL.Query().Get("submitted") != "",
	}

	for _, sv := range view.Steps {
		page.Steps = append(page.Steps, trimStep(sv, view.AllSites))
	}

	if page.Selected != "" {
		action := actions.Parse(page.Selected)

		var buf bytes.Buffer
		if err := forms.Parameters(action, info.StepList(workflow), s.cfg.ParamDefaults).
			Render(r.Context(), &buf); err != nil {
			s.fail(w, "failed to render parameter form", err)
			return
		}
		page.FormHTML = template.HTML(buf.String())

		reasons, err := s.store.ListReasons()
		if err != nil {
			s.fail(w, "failed to list reasons", err)
			return
		}
		page.Reasons = reasons
	}

	s.render(w, s.workflowTpl, page)
}

// trimStep drops the all-zero site columns from one step view.
func trimStep(sv errorinfo.StepView, allSites []string) stepRender {
	skip := make(map[int]bool, len(sv.SkipIndex))
	for _, i := range sv.SkipIndex {
		skip[i] = true
	}

	out := stepRender{Step: sv.Step}
	for i, site := range allSites {
		if !skip[i] {
			out.Sites = append(out.Sites, site)
		}
	}

	for _, row := range sv.Rows {
		rr := rowRender{Code: row.Code}
		for i, count := range row.Counts {
			if !skip[i] {
				rr.Counts = append(rr.Counts, count)
			}
		}
		out.Rows = append(out.Rows, rr)
	}
	return out
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	workflow := r.PostForm.Get("workflow")
	if workflow == "" {
		http.Error(w, "missing workflow", http.StatusBadRequest)
		return
	}
	action := actions.Parse(r.PostForm.Get("action"))

	info, err := s.cache.Get(false)
	if err != nil {
		s.fail(w, "failed to load error data", err)
		return
	}

	record := actions.ParseSubmission(workflow, action, info.StepList(workflow), r.PostForm)

	// A freshly typed reason is stored for reuse and attached to the
	// submission alongside the canned ones.
	if short := r.PostForm.Get("newreason_short"); short != "" {
		reason := &types.Reason{Short: short, Long: r.PostForm.Get("newreason_long")}
		if err := s.store.SaveReason(reason); err != nil {
			s.fail(w, "failed to save reason", err)
			return
		}
		record.Reasons = append(record.Reasons, short)
		s.publish(events.EventReasonAdded, short, nil)
	}

	if err := s.store.SaveAction(record); err != nil {
		s.fail(w, "failed to save action", err)
		return
	}

	metrics.ActionsSubmitted.WithLabelValues(record.Action).Inc()
	s.publish(events.EventActionSubmitted, record.Action+" submitted", map[string]string{
		"workflow": record.Workflow,
		"action":   record.Action,
	})

	log.WithAction(record.ID).Info().
		Str("workflow", record.Workflow).
		Str("action", record.Action).
		Str("operator", record.Operator).
		Msg("action submitted")

	http.Redirect(w, r, "/workflow/"+url.PathEscape(workflow)+"?submitted=1", http.StatusSeeOther)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListActions()
	if err != nil {
		s.fail(w, "failed to list actions", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.WithComponent("web").Error().Err(err).Msg("failed to encode history")
	}
}

func (s *Server) render(w http.ResponseWriter, tpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		log.WithComponent("web").Error().Err(err).Msg("template execution failed")
	}
}

func (s *Server) fail(w http.ResponseWriter, msg string, err error) {
	log.WithComponent("web").Error().Err(err).Msg(msg)
	http.Error(w, msg, http.StatusInternalServerError)
}

func (s *Server) publish(typ events.EventType, msg string, meta map[string]string) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(&events.Event{Type: typ, Message: msg, Metadata: meta})
}

// workflowOf extracts the workflow name from a step name.
func workflowOf(step string) string {
	trimmed := step
	if len(trimmed) > 0 && trimmed[0] == '/' {
		trimmed = trimmed[1:]
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] == '/' {
			return trimmed[:i]
		}
	}
	return trimmed
}
