/*
Package types defines the core data structures used throughout gridboard.

This package contains the fundamental types that represent gridboard's
domain model: aggregated error rows, site readiness statuses, submitted
remediation actions, and canned reasons. These types are shared by the
error store, the history store, and the web layer.

# Core Types

ErrorRecord:
  - One (step, site, exit code) aggregation with an error count
  - Carries the site readiness observed at load time

ActionRecord:
  - A remediation action (clone, recover, investigate) submitted by an
    operator, with per-task parameter maps and attached reasons
  - Persisted by pkg/storage and exported by the history dump

Reason:
  - Short/long form canned explanation text attached to submissions
*/
package types
