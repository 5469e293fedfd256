/*
Package readiness resolves the operational status of grid sites.

Client fetches a JSON site-to-status map from a configured HTTP
endpoint and caches it for a TTL. Site statuses are green, yellow, or
red; anything else, any unknown site, and any fetch failure degrade to
"none" so the dashboard keeps rendering when the readiness source is
down.

Static provides a fixed in-memory map satisfying the same lookup shape,
used in tests and when no endpoint is configured.
*/
package readiness
