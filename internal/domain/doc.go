// Package domain defines the core domain types and interfaces.
//
// Model types (Service, Admin, BookingRequest, GeneralEnquiry), sentinel
// errors, and repository contracts. No implementation code - just contracts.
// Prevents circular imports by keeping interfaces on the consumer side.
package domain
