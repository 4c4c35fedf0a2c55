// Package report turns an Analysis into a structured result document and
// writes it as JSON, YAML, msgpack or a console summary.
package report
