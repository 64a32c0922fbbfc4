package objective

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/AnnieBonav/RecursiveBestFirstSearch/genetic"
)

// Definition binds an objective to a name and the domain it is usually searched over
type Definition struct {
	Name      string
	Objective genetic.Objective
	Domain    genetic.Bounds
}

// Registry maps names to objective definitions
// Names are matched case-insensitively
type Registry struct {
	defs map[string]Definition
	mu   sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]Definition)}
}

// Register adds a definition; names must be unique
func (r *Registry) Register(def Definition) error {
	if def.Name == "" {
		return fmt.Errorf("objective: empty name")
	}
	if def.Objective == nil {
		return fmt.Errorf("objective %q: nil objective", def.Name)
	}

	key := strings.ToLower(def.Name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.defs[key]; exists {
		return fmt.Errorf("objective %q already registered", def.Name)
	}
	r.defs[key] = def
	return nil
}

// Lookup returns the definition registered under name
func (r *Registry) Lookup(name string) (Definition, error) {
	r.mu.RLock()
	def, ok := r.defs[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return Definition{}, fmt.Errorf("unknown objective %q (known: %s)", name, strings.Join(r.Names(), ", "))
	}
	return def, nil
}

// Names returns registered names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.defs))
	for _, def := range r.defs {
		names = append(names, def.Name)
	}
	slices.Sort(names)
	return names
}

// Default holds the built-in benchmark functions
var Default = newDefault()

func newDefault() *Registry {
	r := NewRegistry()
	for _, def := range []Definition{
		{Name: "sphere", Objective: genetic.ObjectiveFunc(Sphere), Domain: SphereDomain},
		{Name: "rastrigin", Objective: genetic.ObjectiveFunc(Rastrigin), Domain: RastriginDomain},
		{Name: "rosenbrock", Objective: genetic.ObjectiveFunc(Rosenbrock), Domain: RosenbrockDomain},
		{Name: "ackley", Objective: genetic.ObjectiveFunc(Ackley), Domain: AckleyDomain},
	} {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
