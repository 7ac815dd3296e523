// Package artifact persists the matrices of one run as labeled CSV files.
//
// Square matrices (structural, relevance) use the layout
//
//	"",id_1,...,id_N
//	id_1,w_11,...,w_1N
//	...
//
// and are written row block by row block through SquareWriter, which is a
// structural.RowSink. File writers stage into a temporary file next to the
// target and rename it into place only after every row has been flushed, so a
// failed run never leaves a partial artifact behind.
//
// Numbers are written in the shortest form that parses back to the same
// float64, so ReadSquare(WriteSquare(m)) reproduces m bit for bit.
package artifact
