// Package montecarlo estimates the uncertainty of a peak frequency by
// perturbing a series with Gaussian noise and locating the highest
// periodogram peak of every perturbed copy.
package montecarlo
