// Package fraudgraph builds the relationship graph of a batch of travel
// bookings and diffuses fraud relevance over it.
//
// What is fraudgraph?
//
//	A batch library that turns one booking table into three dense artifacts:
//		• Structural matrix: N×N similarity of bookings (value, lead time,
//		  shared outcomes inside a 7-day window, shared agency or user)
//		• Attribute matrix: N×F normalised outcome attributes
//		• Relevance matrix: K-step restart-weighted diffusion over the structural graph
//
// Everything is organised under these subpackages:
//
//	records/     Schema, CSV/SQL readers, feature extraction & min-max normalisation
//	kernel/      seeded sampling and decay-rate estimation (d75 → similarity 0.2)
//	structural/  chunked N×N builder streaming row blocks to a RowSink
//	attribute/   N×F attribute matrix
//	propagation/ row-stochastic transition and fixed-iteration diffusion
//	matrix/      dense row-major substrate, validators, BLAS-backed products
//	artifact/    labeled CSV persistence with atomic file replacement
//	pipeline/    YAML config, zap logging, tracing spans, end-to-end Run
//
// Quick example:
//
//	cfg, _ := pipeline.LoadConfig("run.yaml")
//	log, _ := pipeline.NewLogger(cfg.Log)
//	res, err := pipeline.Run(ctx, cfg, log)
//
// Rows and columns of every artifact follow the order of the input table.
package fraudgraph
