// Package render builds the HTML body of a decision report and converts
// it to PDF through the external rendering service. Templating is kept
// deliberately close to what the rich-text editor produces so that
// regenerated sections are indistinguishable from authored ones.
package render
