package generator

import (
	"fmt"
	"sort"
	"sync"

	apperrors "habla-jungla/internal/app/errors"
)

// BackendCreator builds a backend from its settings block.
type BackendCreator func(settings map[string]interface{}) (Backend, error)

var (
	backendRegistry = make(map[string]BackendCreator)
	registryMutex   sync.RWMutex
)

// RegisterBackend registers a backend creator under name. Backend packages
// call it from init.
func RegisterBackend(name string, creator BackendCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	backendRegistry[name] = creator
}

// GetBackendCreator returns the creator registered for name.
func GetBackendCreator(name string) (BackendCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := backendRegistry[name]
	if !ok {
		return nil, apperrors.Wrapf(apperrors.ErrUnknownBackend, "generator backend %s not registered", name)
	}
	return creator, nil
}

// ListRegisteredBackends returns registered backend names, sorted.
func ListRegisteredBackends() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	names := make([]string, 0, len(backendRegistry))
	for name := range backendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewBackend creates the named backend.
func NewBackend(name string, settings map[string]interface{}) (Backend, error) {
	creator, err := GetBackendCreator(name)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = map[string]interface{}{}
	}
	b, err := creator(settings)
	if err != nil {
		return nil, fmt.Errorf("create %s backend: %w", name, err)
	}
	return b, nil
}
