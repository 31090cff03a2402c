// Package catalog holds the read-only reference data the order lifecycle
// consults: restaurants, products and the delivery pricing settings.
//
// Catalog records are owned by an external administration surface. The order
// engine only reads them, and only at assembly time; prices are copied onto
// order lines and never looked up again.
package catalog
