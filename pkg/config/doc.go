// Package config defines the YAML configuration for the callisto CLI and
// mirror service.
//
// Configuration is loaded in three layers: the YAML file, built-in
// defaults for anything unset, and CALLISTO_* environment variable
// overrides on top. The final configuration is validated before use.
//
// Example config.yaml:
//
//	source:
//	  path: /data/ripe.db.gz
//	parse:
//	  mode: strict
//	schema:
//	  path: schemas/route.yaml
//	sink:
//	  backend: sqlite
//	  table: routes
//	  sqlite:
//	    path: data/registry.db
//	    driver: pure
//	mirror:
//	  schedule: "0 4 * * *"
//	  watch: true
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
//	  metrics:
//	    enabled: true
//	    listen: :9090
package config
