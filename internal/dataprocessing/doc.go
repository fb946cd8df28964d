// Package dataprocessing loads ball-by-ball delivery logs into memory.
//
// # Formats
//
// LoadDeliveries picks the reader from the file extension:
//
//	.xlsx   first worksheet of the workbook (excelize)
//	other   comma-separated text, UTF-8 BOM tolerated
//
// Columns are located by header name, case-insensitively. The accepted
// names are:
//
//	match_id      match_id, id, match
//	over          over
//	ball          ball
//	batsman       batsman, batter, striker
//	bowling_team  bowling_team
//	batsman_runs  batsman_runs, runs_off_bat
//
// Other columns are ignored.
//
// # Error Handling
//
// Loading is all or nothing. A missing column or unparsable number is a
// PARSING error, a row failing the Delivery validation rules is a VALIDATION
// error. Both carry the 1-based line number in the error context under "line".
//
// # Usage
//
//	deliveries, err := dataprocessing.LoadDeliveries(ctx, "deliveries.csv")
//	if err != nil {
//	    return err
//	}
package dataprocessing
