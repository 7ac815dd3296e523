// Package kernel estimates the decay rates of the exponential similarity
// kernels used by the structural graph.
//
// For a normalised feature x the rate is chosen so that two records whose
// difference equals the 75th percentile d75 of pairwise differences have
// similarity 0.2:
//
//	λ = -ln(0.2) / (d75 + ε)      sim(d) = exp(-λ·d)
//
// d75 is measured on a random sample of at most 3000 records drawn without
// replacement, over every ordered pair of the sample including the zero
// diagonal, interpolating linearly between neighbouring ranks. Randomness
// comes only from the caller's *rand.Rand, so a fixed seed reproduces the
// same rates.
package kernel
