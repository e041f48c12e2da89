// Package model provides the shared model contracts and fitted-state tracking
// used by the tree and forest packages.
package model

import (
	"sync"

	scierrors "github.com/YuminosukeSato/scitree/pkg/errors"
)

// StateManager tracks whether a model has been populated, in a thread-safe
// manner, together with the training dimensions seen at population time.
type StateManager struct {
	mu     sync.RWMutex
	fitted bool

	nAttributes int
	nSamples    int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been populated.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as populated.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
}

// Reset clears the fitted state and dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nAttributes = 0
	s.nSamples = 0
}

// SetDimensions records the attribute and row counts used for population.
func (s *StateManager) SetDimensions(nAttributes, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nAttributes = nAttributes
	s.nSamples = nSamples
}

// Dimensions returns the attribute and row counts recorded by SetDimensions.
func (s *StateManager) Dimensions() (nAttributes, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nAttributes, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model has not been populated.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return scierrors.NewNotFittedError(modelName, method)
	}
	return nil
}

// State is a snapshot of the fitted state, for logging and debugging.
type State struct {
	Fitted      bool `json:"fitted"`
	NAttributes int  `json:"n_attributes,omitempty"`
	NSamples    int  `json:"n_samples,omitempty"`
}

// State returns the current state snapshot.
func (s *StateManager) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Fitted: s.fitted, NAttributes: s.nAttributes, NSamples: s.nSamples}
}
