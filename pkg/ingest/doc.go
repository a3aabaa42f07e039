/*
Package ingest drives dump imports end to end: it opens a source file,
streams objects through the parser, optionally projects them against a
declared schema, and writes the result to a sink.

The Importer is the single-shot engine used by the export command:

	imp, err := ingest.NewImporter(ingest.Options{
		Schema:  sch,
		Records: recordSink,
	})
	result, err := imp.ImportFile(ctx, "testdata/dump.txt")

The Mirror wraps an Importer into a long-running service that re-imports
on a cron schedule and on source file changes, with debouncing so an
rsync-style replace triggers one import rather than dozens.
*/
package ingest
