// Package services contains the server-side business logic on top of the
// repositories: input validation, the clock, and transaction boundaries for
// batch operations.
package services
