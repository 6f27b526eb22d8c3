// Package exporter writes pipeline results to disk.
//
// Two surfaces exist: a CSV writer for the cleaned transaction feed and
// tabular report sections, and an Excel writer that lays the whole
// summary out as a multi-sheet workbook. Both resolve relative paths
// against the configured output directory and create it on demand.
//
// CSV files are written with a UTF-8 BOM so Excel opens them with the
// right encoding.
package exporter
