// Package reconcile provides the reconciliation engine that compares a local,
// fully loaded dataset against a remote dataset retrieved page by page.
//
// The package is pure given its collaborators: it never opens connections
// itself. Pages come from a PageFetcher, local data comes in as a Dataset.
//
// # Architecture
//
// The reconcile system consists of three parts:
//
//  1. Engine: drives the pagination loop. The number of records to validate is
//     either an explicit target or the total-count hint of the first page, and
//     the iteration bound is recomputed after every page.
//
//  2. Comparator: compares one remote record with its local counterpart field by
//     field, in mapping order, without short-circuiting.
//
//  3. Aggregate: a RunAggregate value threaded through the loop and returned,
//     holding counters, failure summaries and passing local records.
//
// # Errors
//
// Fatal conditions are returned as *Error values classified by kind
// (ErrConfiguration, ErrConnectivity, ErrProtocol, ErrDataIntegrity).
// Record mismatches are never errors; they are recorded in the aggregate.
//
// # Usage Example
//
//	mapping, _ := reconcile.NewFieldMapping([]reconcile.FieldPair{
//	    {Remote: "name", Local: "NAME"},
//	    {Remote: "status", Local: "STATUS"},
//	})
//
//	agg, err := reconcile.Reconcile(ctx, reconcile.Spec{
//	    Dataset:       dataset,
//	    Mapping:       mapping,
//	    PrimaryKey:    "id",
//	    TargetRecords: 1500,
//	    PageSize:      1000,
//	    Fetcher:       fetcher,
//	    Logger:        logger,
//	})
package reconcile
