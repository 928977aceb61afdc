package service

// Service defines the lifecycle of a long-lived subsystem: audio device, content watcher, monitor server
//
// Lifecycle:
//  1. Construction
//  2. Start() - open resources, launch background goroutines
//  3. [runtime operation]
//  4. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Start before this one
	Dependencies() []string

	// Start begins service operation
	Start() error

	// Stop halts service operation; must be idempotent
	Stop() error
}
