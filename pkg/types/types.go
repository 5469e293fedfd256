package types

import (
	"time"
)

// ErrorRecord is a single row of the aggregated grid error data:
// the number of times one exit code fired for one step at one site.
type ErrorRecord struct {
	StepName     string
	SiteName     string
	ErrorCode    string
	NumberErrors int
	Readiness    Readiness
}

// Readiness is the operational status reported for a grid site.
type Readiness string

const (
	ReadinessGreen  Readiness = "green"
	ReadinessYellow Readiness = "yellow"
	ReadinessRed    Readiness = "red"
	ReadinessNone   Readiness = "none"
)

// ActionRecord is a remediation action submitted by an operator
// against a workflow.
type ActionRecord struct {
	ID          string
	Workflow    string
	Action      string
	Operator    string
	Reasons     []string
	Parameters  map[string]TaskParameters
	SubmittedAt time.Time
}

// TaskParameters holds the parameter values entered for a single task
// of a workflow (or the whole workflow when the action is not per-task).
type TaskParameters map[string]string

// Reason is a canned remediation explanation an operator can attach
// to an action submission.
type Reason struct {
	Short string
	Long  string
}
