// Package dataprocessing implements the core of the sales analytics
// pipeline: parsing raw feed lines into transactions, validating and
// filtering them, and computing aggregate statistics.
//
// # Architecture
//
// The package is organized into three stages:
//
//  1. Parser: splits pipe-delimited lines and coerces numeric fields
//  2. Validator: applies business rules and optional caller filters
//  3. Analytics: pure aggregation functions over the valid set
//
// # Data Flow
//
// The typical data flow through this package:
//
//	Raw lines → Parser → candidates → Validator → valid set → Analytics → stats
//
// # Error Handling
//
// Per-line failures never propagate as errors. Malformed or non-numeric
// lines are dropped and counted in ParseStats; business-rule violations are
// dropped and counted in FilterSummary. Only aggregate counts cross stage
// boundaries. The single exception is PeakDay, which returns
// errors.ErrNoTransactions when invoked on an empty valid set, a caller
// contract violation rather than a data condition.
//
// # Purity
//
// Analytics functions never mutate their input and carry no state between
// calls: running an aggregation twice over the same slice yields identical
// results.
package dataprocessing
