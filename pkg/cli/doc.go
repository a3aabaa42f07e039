/*
Package cli provides command-line interface utilities for Callisto.

The cli package includes output formatters, progress reporters, and common CLI
helpers used by the callisto command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := StatsResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Progress Reporting:

For long-running imports, use the progress reporter:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start()
	for obj := range objects {
		// Process object
		progress.Increment()
	}
	progress.Finish()

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
