// Package registry provides a global registry of autopilot fallback policies.
// Policies register themselves in init() functions, allowing the engine,
// config validation and the CLI to resolve them by name without hardcoded
// dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snakebot/internal/core"
)

// Fallback chooses a heading when no route to the food exists.
// It sees the whole body (tail included) and the board side, and returns
// ok=false when every heading leaves the grid or hits the body.
// Implementations must be deterministic.
type Fallback func(body []core.Cell, width int) (dir core.Direction, ok bool)

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	Name        string
	Description string
}

var (
	policies     = make(map[string]Fallback)
	descriptions = make(map[string]string)
	mu           sync.RWMutex
)

// Register adds a fallback policy to the registry.
// Typically called from an init() function.
// Panics if a policy with the same name is already registered.
func Register(name, description string, f Fallback) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := policies[name]; exists {
		panic(fmt.Sprintf("registry: policy %q already registered", name))
	}
	if f == nil {
		panic(fmt.Sprintf("registry: policy %q is nil", name))
	}

	policies[name] = f
	descriptions[name] = description
}

// List returns information about all registered policies, sorted by name.
func List() []PolicyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PolicyInfo, 0, len(policies))
	for name := range policies {
		result = append(result, PolicyInfo{
			Name:        name,
			Description: descriptions[name],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the policy registered under name.
// Returns an error if the name is not registered.
func Lookup(name string) (Fallback, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := policies[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown policy %q", name)
	}

	return f, nil
}

// Exists checks if a policy with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := policies[name]
	return ok
}
