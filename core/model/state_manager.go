package model

import (
	"sync"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
)

// StateManager manages the fitted state of a model in a thread-safe manner.
// Models hold it by composition.
type StateManager struct {
	mu     sync.RWMutex
	fitted bool

	nFeatures int
	nSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as fitted with the dimensions seen during fitting.
func (s *StateManager) SetFitted(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// Reset resets the fitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nSamples = 0
}

// Dimensions returns the number of features and samples seen during fitting.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireFitted returns a NotFittedError naming modelName and method if the
// model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
