// Package delivery defines the contract every transport implementation
// (HTTP, workers) exposes to the application bootstrap.
package delivery

import "context"

// Delivery is a long-running transport endpoint.
type Delivery interface {
	// Serve blocks until the endpoint stops or fails.
	Serve(ctx context.Context) error
}
