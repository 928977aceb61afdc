package query

import (
	"fmt"
	"log"
	"strings"
	"sync"
)

// Evaluator parses and runs source conditions
// A condition is a comma-separated list of clauses that must all hold
// Each clause is a predicate name followed by space-separated arguments; a leading '!' negates it
// Any parse or lookup error makes the whole condition false
type Evaluator struct {
	world      World
	logger     *log.Logger
	predicates map[string]Predicate

	mu       sync.Mutex
	reported map[string]struct{} // Failing conditions already logged
}

// NewEvaluator creates an evaluator with the built-in predicates
// logger may be nil to use log.Default
func NewEvaluator(world World, logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.Default()
	}
	return &Evaluator{
		world:      world,
		logger:     logger,
		predicates: builtins(),
		reported:   make(map[string]struct{}),
	}
}

// Register adds or replaces a predicate, names are case-insensitive
func (e *Evaluator) Register(name string, p Predicate) {
	e.predicates[strings.ToUpper(name)] = p
}

// Evaluate implements the mixer condition contract; an empty condition is true
// A failing condition is logged once until Reset
func (e *Evaluator) Evaluate(condition, location string) bool {
	ok, err := e.Check(condition, location)
	if err != nil {
		e.report(condition, err)
		return false
	}
	return ok
}

// Reset forgets which failing conditions were logged
// The mixer calls it when the source table is invalidated
func (e *Evaluator) Reset() {
	e.mu.Lock()
	clear(e.reported)
	e.mu.Unlock()
}

func (e *Evaluator) report(condition string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, seen := e.reported[condition]; seen {
		return
	}
	e.reported[condition] = struct{}{}
	e.logger.Printf("Query '%s' failed: %v", condition, err)
}

// Check evaluates condition and reports the first error encountered
func (e *Evaluator) Check(condition, location string) (bool, error) {
	ctx := Context{Location: location, World: e.world}

	for _, clause := range strings.Split(condition, ",") {
		args := strings.Fields(clause)
		if len(args) == 0 {
			continue
		}

		negate := strings.HasPrefix(args[0], "!")
		name := strings.ToUpper(strings.TrimPrefix(args[0], "!"))
		p, ok := e.predicates[name]
		if !ok {
			return false, fmt.Errorf("%w '%s'", ErrUnknownQuery, name)
		}

		result, err := p(args, ctx)
		if err != nil {
			return false, fmt.Errorf("%s: %w", name, err)
		}
		if result == negate {
			return false, nil
		}
	}
	return true, nil
}
