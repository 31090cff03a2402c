// Package services provides domain services that work across the order,
// catalog and kernel models and do not belong to a single aggregate.
//
// The package includes:
//   - GeoFeeCalculator: prices a delivery leg from the great-circle distance
//     between a restaurant and the delivery point
//   - OrderAssembler: turns an untrusted cart into a priced order.Draft using
//     live catalog data
//
// Both services are pure with respect to storage: they read what they are
// given and never persist anything.
package services
