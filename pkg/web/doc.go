/*
Package web serves the gridboard dashboard.

The server renders three operator-facing surfaces with html/template:
the global errors table (rows and columns chosen by the pievar query
parameter), the per-workflow page with one error table per step plus
the remediation action form, and the JSON action history. The action
parameter fragment inside the workflow page is produced by pkg/forms
and embedded pre-rendered.

Routes:

	GET  /                     global errors table
	GET  /workflow/{workflow}  step tables and action form
	POST /submit               persist a remediation action
	GET  /history              stored actions as JSON
	GET  /healthz              component health
	GET  /metrics              Prometheus metrics

Every page route runs through the middleware, which applies per-client
rate limiting (honoring X-Forwarded-For and X-Real-IP for the client
identity), request metrics, and debug request logging. Page loads that
hit the global table may refresh the error cache; the workflow and
submit handlers never do, so one page render always sees one snapshot.
*/
package web
