package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// Sentinel errors
var (
	ErrDuplicateService  = errors.New("service already registered")
	ErrMissingDependency = errors.New("service depends on unregistered service")
	ErrDependencyCycle   = errors.New("circular dependency detected in services")
)

// Hub starts registered services in dependency order and stops them in reverse
type Hub struct {
	mu       sync.Mutex
	logger   *log.Logger
	services map[string]Service
	started  []string // Services that completed Start(), for rollback
}

// NewHub creates an empty service hub; logger may be nil to use log.Default
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger:   logger,
		services: make(map[string]Service),
	}
}

// Register adds a service
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateService, name)
	}
	h.services[name] = svc
	return nil
}

// StartAll starts every service in topological order
// On failure, already-started services are stopped in reverse order
func (h *Hub) StartAll() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	order, err := h.order()
	if err != nil {
		return err
	}

	h.started = nil
	for _, name := range order {
		if err := h.services[name].Start(); err != nil {
			h.stopStarted()
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order; every service gets Stop called
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopStarted()
}

// Started returns the names of running services in start order
func (h *Hub) Started() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.started...)
}

func (h *Hub) stopStarted() {
	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			h.logger.Printf("Service %s stop failed: %v", name, err)
		}
	}
	h.started = nil
}

// order computes start order using Kahn's algorithm, ties broken by name
func (h *Hub) order() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string) // dep -> services that depend on it

	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("%w: %s needs %s", ErrMissingDependency, name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var ready []string
	for name, degree := range inDegree {
		if degree == 0 {
			ready = append(ready, name)
		}
	}

	result := make([]string, 0, len(h.services))
	for len(ready) > 0 {
		sort.Strings(ready)
		name := ready[0]
		ready = ready[1:]
		result = append(result, name)

		for _, dependent := range dependents[name] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, ErrDependencyCycle
	}
	return result, nil
}
