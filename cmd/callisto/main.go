// Callisto is a streaming parser and mirror for RPSL registry dumps.
//
// It reads WHOIS/IRR database dumps in the Routing Policy Specification
// Language, splits them into objects, optionally projects them against a
// declared schema, and writes the result to SQLite, JSONL, or CSV.
//
// Usage:
//
//	# Dump a registry file as JSON lines
//	callisto parse ripe.db.gz --format json
//
//	# Project a dump into SQLite using a schema declaration
//	callisto export ripe.db.gz --schema route.yaml --backend sqlite
//
//	# Per-class object counts
//	callisto stats ripe.db.gz
//
//	# Check a dump for malformed lines
//	callisto lint ripe.db
//
//	# Keep a local database in sync with a dump file
//	callisto mirror --config callisto.yaml
//
//	# Show version information
//	callisto version
package main

func main() {
	Execute()
}
