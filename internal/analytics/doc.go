// Package analytics computes the batting summary tables of a delivery log.
//
// Every function is pure: it reads the delivery slice, never modifies it and
// returns a freshly allocated table. Groups are collected in the order their
// key is first seen and ordered with a stable sort, so entries with equal
// metrics keep first-seen order and the output is deterministic for a given
// input.
//
// Summarize runs every aggregation exactly once and bundles the tables into a
// Summary, which is what the report pages and the exporters consume.
package analytics
