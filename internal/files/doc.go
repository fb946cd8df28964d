// Package files provides the file system helpers used by the report pipeline.
//
// Discovery resolves the input log from an ordered list of candidate paths,
// primary first, and reports a NOT_FOUND error when none of them exists.
//
// Manager holds the write side: directory creation and the temp-file then
// rename sequence that lets the report and export writers publish a file only
// once it is complete.
//
// Example usage:
//
//	path, err := files.FindFirst(ctx, "deliveries.csv", "content/deliveries.csv")
//	if errors.IsNotFound(err) {
//	    // neither candidate exists
//	}
//
//	tmp, err := files.CreateTemp("out/report.pdf")
//	// write and verify tmp ...
//	err = files.MoveFile(tmp, "out/report.pdf")
package files
