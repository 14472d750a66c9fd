// Package report persists the outcome of a reconciliation run.
//
// # Sink
//
// Sink receives the failures and the passing records of a run. XLSXSink writes
// one workbook per kind into the output directory, using excelize stream
// writers so large success lists do not build the sheet in memory:
//
//	<profile>_failures_<run>.xlsx   Primary Key | Mismatch Summary
//	<profile>_successes_<run>.xlsx  one column per mapped local field, mapping order
//
// When an Uploader is configured every workbook is also published to object
// storage under reports/<profile>/.
//
// Sink errors never change the verdict of a run; callers log them.
//
// # Console and JSON output
//
// Summary renders the metrics block printed by the validate command and
// WriteJSON saves the aggregate next to the workbooks.
package report
