// Package service implements the generation orchestrators: regenerating
// a single decision report, bundling a meeting's reports into one PDF,
// and the thin job submission surface in front of the queue.
package service
