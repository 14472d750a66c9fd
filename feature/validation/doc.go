// Package validation runs reconciliations of validation profiles.
//
// The Service wires the collaborators of a run in order: it loads the profile,
// its field mapping and SQL query, loads the local dataset, acquires one
// bearer token, drives the reconciliation engine over the remote endpoint and
// finally writes the reports. Report failures are logged and do not change the
// verdict.
//
// # HTTP API
//
//	POST /validations/:profile?records=N&page_size=N&upload=true
//	GET  /validations/health
//	GET  /validations/profiles
//	GET  /validations/profiles/:profile
//	GET  /validations/:profile/reports
//	GET  /validations/:profile/reports/:file
//
// A run answers 200 when every record matched and 422 when any did not.
// Fatal errors map to 400 (configuration), 404 (unknown profile),
// 409 (data integrity) and 502 (database or remote service).
//
// Concurrent POSTs for the same profile and parameters share one run.
package validation
