// Package order provides the Order aggregate, its status state machine and the
// domain events emitted by its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding product, customer, total and timestamps
//   - Status: the closed Created/Completed/Cancelled enum with numeric codes 1/2/3
//   - ValidateTransition: the pure rule deciding whether a status change is allowed
//   - OrderCreated and OrderStatusChanged: immutable events for notification fan-out
//
// Key business rules:
//   - A new order is always Created and its create and update times are equal
//   - Created -> Completed and Created -> Cancelled are the only transitions
//   - Completed and Cancelled are terminal; an order changes status at most once
//   - Decoding an unknown status code is an error, never a default
package order
