/*
Package forms builds the action parameter forms shown on the workflow
page.

The package is split into a pure decision layer and a thin rendering
layer. Plan maps a selected action, the workflow's task list, and the
configured field defaults onto an ordered list of parameter blocks;
that mapping is a pure function and carries all the behavior worth
testing. Parameters wraps the plan in a templ.Component that writes the
blocks as HTML form controls.

Control naming follows the param_<blockIndex>_<fieldName> convention
the submission parser in pkg/actions expects. The recover action emits
one block per task, headed by the task name with its first two path
segments dropped; every other action emits one block with index 0.
Unknown actions render a single block with no controls rather than an
error, keeping the dashboard permissive toward action types added
upstream later.
*/
package forms
