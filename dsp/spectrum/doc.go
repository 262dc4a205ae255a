// Package spectrum computes Lomb-Scargle periodograms of unevenly sampled
// series and the peak and noise estimates derived from them.
//
// Power is normalized to amplitude squared: a noiseless sinusoid of
// amplitude A produces P ~= A^2 at its frequency, so sqrt(P) reads directly
// as an amplitude spectrum. Frequencies are in cycles per time unit of the
// input.
package spectrum
