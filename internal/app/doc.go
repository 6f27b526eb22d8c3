// Package app wires the pipeline stages into a runnable whole.
//
// A Pipeline owns one configured set of collaborators (feed reader,
// parser, validator, exchange client, exporters) and executes runs
// against them. Each run gets a fresh run ID which is carried through
// the context and stamped onto every log record.
//
// Stage order is fixed: read, parse, validate and filter, aggregate,
// assemble, export. Aggregation operates only on the accepted set; the
// rejection and filter counters travel alongside in the summary.
package app
