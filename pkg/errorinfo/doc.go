/*
Package errorinfo loads and serves the aggregated grid error data
behind the dashboard.

An Info is one immutable snapshot of the data: an all_errors.json dump
(step -> exit code -> site -> count) loaded into an in-memory SQLite
database, or an existing .db file opened directly. Site readiness is
resolved once per site at load time through a ReadinessSource.

From the snapshot the package derives the sorted axis lists (steps,
sites, numerically sorted exit codes), per-workflow step lists, sparse
and dense step tables with readiness filtering, the grouped structures
behind the global errors table (Errors, GroupErrors, MatchingPievars),
and the per-workflow view used by the workflow page (SeeWorkflow),
including the all-zero site columns a renderer can skip.

Cache wraps snapshot lifetime: it hands out a shared Info and rebuilds
it when older than the configured refresh interval, but only from entry
points that declare refreshing safe. Database access within a snapshot
is serialized by a mutex, matching the single-writer shape of the
underlying in-memory database.
*/
package errorinfo
