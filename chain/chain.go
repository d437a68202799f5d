// Package chain provides interfaces for ordered processing of data through stages.
// Chains allow modifications to be applied in a predictable order, so pipeline
// steps (status modifiers on an attack roll, rider effects after damage) stay
// composable and testable instead of becoming an unrolled if/else ladder.
package chain

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Stage represents a processing stage in a chain.
// Stages determine the order of execution for modifications.
type Stage string

// Errors returned by Chain implementations.
var (
	ErrDuplicateID = errors.New("chain: modifier ID already exists")
	ErrIDNotFound  = errors.New("chain: modifier ID not found")
)

// Chain processes data through ordered stages of modifications.
// Each modification transforms the data and passes it to the next.
type Chain[T any] interface {
	// Add registers a modifier at the specified stage with a unique ID.
	// Returns ErrDuplicateID if the ID already exists.
	Add(stage Stage, id string, modifier func(context.Context, T) (T, error)) error

	// Remove unregisters a modifier by its ID.
	// Returns ErrIDNotFound if the ID does not exist.
	Remove(id string) error

	// Execute runs all modifiers in stage order, transforming the data.
	Execute(ctx context.Context, data T) (T, error)
}

type namedModifier[T any] struct {
	id      string
	handler func(context.Context, T) (T, error)
}

// Staged implements Chain[T] with ordered stage execution.
type Staged[T any] struct {
	mu        sync.RWMutex
	stages    []Stage
	modifiers map[Stage][]namedModifier[T]
	idToStage map[string]Stage
}

// NewStaged creates a new chain with the specified stage order.
// Modifiers run in the order stages are provided, and within a stage in the
// order they were added.
func NewStaged[T any](stages []Stage) *Staged[T] {
	modifiers := make(map[Stage][]namedModifier[T], len(stages))
	for _, stage := range stages {
		modifiers[stage] = make([]namedModifier[T], 0)
	}
	return &Staged[T]{
		stages:    stages,
		modifiers: modifiers,
		idToStage: make(map[string]Stage),
	}
}

// Add implements Chain[T].
func (c *Staged[T]) Add(stage Stage, id string, handler func(context.Context, T) (T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.idToStage[id]; exists {
		return ErrDuplicateID
	}

	c.modifiers[stage] = append(c.modifiers[stage], namedModifier[T]{id: id, handler: handler})
	c.idToStage[id] = stage
	return nil
}

// Remove implements Chain[T].
func (c *Staged[T]) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stage, exists := c.idToStage[id]
	if !exists {
		return ErrIDNotFound
	}

	mods := c.modifiers[stage]
	for i, mod := range mods {
		if mod.id == id {
			c.modifiers[stage] = append(mods[:i], mods[i+1:]...)
			delete(c.idToStage, id)
			return nil
		}
	}
	return ErrIDNotFound
}

// Execute implements Chain[T].
func (c *Staged[T]) Execute(ctx context.Context, data T) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := data
	for _, stage := range c.stages {
		for _, mod := range c.modifiers[stage] {
			var err error
			result, err = mod.handler(ctx, result)
			if err != nil {
				var zero T
				return zero, fmt.Errorf("chain: stage %s modifier %s: %w", stage, mod.id, err)
			}
		}
	}
	return result, nil
}
