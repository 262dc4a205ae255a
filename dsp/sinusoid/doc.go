// Package sinusoid fits sums of sinusoids with known frequencies to a time
// series and removes them again.
//
// The model is y(t) = sum_k A_k*sin(2*pi*f_k*t + phi_k). Fit refines all
// amplitudes and phases jointly with a Levenberg-Marquardt least-squares
// solver; frequencies stay fixed unless WithRefineFrequencies is given.
// Prewhiten subtracts the same model, so a fit followed by Prewhiten leaves
// the part of the series the model cannot explain.
package sinusoid
