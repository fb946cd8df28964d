// Package app runs the report pipeline.
//
// A Reporter resolves the delivery log, loads it, computes the batting
// summary, optionally exports the summary tables and then draws the seven
// report pages in a fixed order before writing the document once.
//
// # Run state
//
// Each run moves through
//
//	start -> loaded -> aggregated -> rendering(1..7) -> closed
//
// and ends in failed on the first error. Stages are never skipped and a
// failed page is never retried.
//
// # Usage
//
//	reporter, err := app.NewReporter(cfg, logger, providers)
//	if err != nil {
//	    return err
//	}
//	result, err := reporter.Run(ctx)
//
// The package never calls os.Exit; the command decides the exit status.
package app
