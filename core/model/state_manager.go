// Package model provides the shared interfaces, lifecycle state and
// persistence helpers for hashftrl models.
package model

import (
	"sync"

	"github.com/YuminosukeSato/hashftrl/pkg/errors"
)

// StateManager tracks whether a model is trained and the shape of the data
// it was trained on.
type StateManager struct {
	mu sync.RWMutex

	trained   bool
	nFeatures int
	nSamples  int
}

// NewStateManager creates a new StateManager instance.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsTrained returns whether the model holds weights.
func (s *StateManager) IsTrained() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.trained
}

// SetTrained marks the model as trained.
func (s *StateManager) SetTrained() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trained = true
}

// Reset resets the trained state and the recorded dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trained = false
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the number of features and, cumulatively, samples
// seen during training.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// AddSamples adds n to the cumulative sample count.
func (s *StateManager) AddSamples(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nSamples += n
}

// Dimensions returns the number of features and samples seen during training.
func (s *StateManager) Dimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

// RequireTrained returns a StateError if the model has not been trained.
func (s *StateManager) RequireTrained(modelName, op string) error {
	if !s.IsTrained() {
		return errors.NewNotTrainedError(modelName, op)
	}
	return nil
}
