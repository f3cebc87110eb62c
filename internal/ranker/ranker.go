// Package ranker holds the model gateway adapters. Every adapter implements
// ranking.Ranker; failures surface as *GatewayError and are never retried
// here, the caller's fallback policy is the recovery path.
package ranker

import "fmt"

// rankTemperature keeps repeated calls on identical input stable in rank
// ordering, if not in exact floats.
const rankTemperature = 0.1

type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func gatewayErr(provider string, format string, args ...any) error {
	return &GatewayError{Provider: provider, Err: fmt.Errorf(format, args...)}
}
