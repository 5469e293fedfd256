/*
Package config loads the gridboard server configuration from YAML.

The configuration covers the dashboard listen address, the location of the
aggregated error data, the error cache refresh interval, the site readiness
source, per-field form defaults, and logging options. Fields left unset in
the file fall back to the defaults returned by Default().

Example configuration:

	listen_addr: ":8080"
	data_location: /var/lib/gridboard/all_errors.json
	data_dir: /var/lib/gridboard
	refresh_interval: 30m
	readiness:
	  url: https://readiness.example.org/status.json
	  ttl: 15m
	param_defaults:
	  group: production
	log:
	  level: info
	  json: true
*/
package config
