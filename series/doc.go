// Package series holds the immutable time series the extraction loop works
// on and reads it from two-column text files.
//
// Samples may be unevenly spaced and need not be sorted. A TimeSeries never
// changes after construction; derived series (residuals, perturbed copies)
// are new values sharing the time axis.
package series
