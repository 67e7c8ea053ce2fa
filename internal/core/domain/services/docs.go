// Package services holds domain services that decide over aggregates without
// performing I/O.
//
// The package includes:
//   - OrderTransitionAuthority: decides whether a caller may apply a patch to a
//     mirrored order and, if so, exactly which fields to write
//   - Rejection: the named, stable reason returned when the answer is no
package services
