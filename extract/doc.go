// Package extract runs iterative prewhitening: it repeatedly locates the
// strongest periodogram peak of the current residual, refits every
// extracted sinusoid against the original series and subtracts the model
// again, collecting one Component per iteration.
//
// An Extractor is a small state machine. Step advances it by one full
// iteration; Run loops until a termination condition from Config holds.
package extract
