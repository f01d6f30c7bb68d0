package strategy

import (
	"sort"
	"sync"

	"patternbot/pkg/errors"
)

// Registry manages the available detectors. Detector dispatch is static:
// every entry implements the same Detector interface, and the scheduler
// iterates List in deterministic order.
type Registry interface {
	RegisterDetector(detector Detector) error
	GetDetector(name string) (Detector, error)
	ListDetectors() []Detector
	RemoveDetector(name string) error
}

// RegistryV1 is the default map-backed registry.
type RegistryV1 struct {
	detectors map[string]Detector
	mu        sync.RWMutex
}

// NewRegistry creates an empty detector registry.
func NewRegistry() Registry {
	return &RegistryV1{
		detectors: make(map[string]Detector),
		mu:        sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry with the full pattern catalog
// registered: six long detectors and five short detectors.
func NewDefaultRegistry() Registry {
	registry := NewRegistry()

	for _, detector := range []Detector{
		NewMorningStar(),
		NewInvertedHammer(),
		NewSquirrel(),
		NewBullishDivergence(),
		NewHarmonic(),
		NewLeadingDiagonal(),
		NewShootingStar(),
		NewEveningStar(),
		NewBearishEngulfing(),
		NewBearishDivergence(),
		NewLeadingDiagonalBreakdown(),
	} {
		// Registration of the static catalog cannot collide.
		_ = registry.RegisterDetector(detector)
	}

	return registry
}

// RegisterDetector adds a detector to the registry.
func (r *RegistryV1) RegisterDetector(detector Detector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := detector.Name()
	if _, exists := r.detectors[name]; exists {
		return errors.Newf(errors.ErrCodeDuplicateStrategy, "RegisterDetector: detector with name %s already registered", name)
	}

	r.detectors[name] = detector

	return nil
}

// GetDetector retrieves a detector by name.
func (r *RegistryV1) GetDetector(name string) (Detector, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	detector, exists := r.detectors[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "GetDetector: detector with name %s not found", name)
	}

	return detector, nil
}

// ListDetectors returns all registered detectors sorted by name, so that the
// scheduler's per-tick iteration is deterministic.
func (r *RegistryV1) ListDetectors() []Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}

	sort.Strings(names)

	detectors := make([]Detector, 0, len(names))
	for _, name := range names {
		detectors = append(detectors, r.detectors[name])
	}

	return detectors
}

// RemoveDetector removes a detector from the registry.
func (r *RegistryV1) RemoveDetector(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.detectors[name]; !exists {
		return errors.Newf(errors.ErrCodeUnknownStrategy, "RemoveDetector: detector with name %s not found", name)
	}

	delete(r.detectors, name)

	return nil
}
