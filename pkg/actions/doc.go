/*
Package actions models the remediation actions operators can submit
against a workflow and the parameters each action takes.

An Action is one of clone, recover, or investigate, with ActionOther as
the forward-compatible fallback for names this version does not know.
Spec(action) returns the parameter table for the action: ordered choice
groups (rendered as radio controls) followed by ordered free-text
fields. The recover action is entered once per task of the workflow;
every other action once per workflow.

ParseSubmission turns a posted parameter form back into an ActionRecord
using the same param_<index>_<field> naming the renderer emits.
*/
package actions
