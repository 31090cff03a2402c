// Package kernel provides the value objects shared by every aggregate:
//   - UUID: identifier for orders, users, restaurants and products
//   - GeoPoint: latitude/longitude with haversine distance
//   - Money: non-negative two-place decimal amount
//
// Values are immutable and safe for concurrent use. Constructors validate
// their input and the zero values of UUID and GeoPoint fail Validate.
package kernel
