// Package kernel holds value objects shared across the order domain.
//
// Money pairs a non-negative decimal amount with a currency code. Amounts are
// github.com/shopspring/decimal values from the request body down to the
// numeric database column.
package kernel
