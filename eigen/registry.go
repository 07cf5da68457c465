package eigen

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a Solver from resolved options.
type Factory func(Options) Solver

type entry struct {
	factory Factory
	caps    Capability
}

var (
	registryMu sync.RWMutex
	registry   = map[string]entry{}
)

func init() {
	mustRegister(BackendJacobi, newJacobi, Capability{
		Symmetric:   true,
		Generalized: true,
		Direct:      true,
		Spectra:     []Spectrum{SmallestMagnitude, SmallestReal},
	})
	mustRegister(BackendLAPACK, newLAPACK, Capability{
		Symmetric:   true,
		Generalized: true,
		Direct:      true,
		Spectra:     []Spectrum{SmallestMagnitude, SmallestReal},
		CPU:         HostFeatures(),
	})
}

func mustRegister(name string, f Factory, c Capability) {
	if err := Register(name, f, c); err != nil {
		panic(err)
	}
}

// Register makes a backend available to New and Lookup.
// caps.Backend is overwritten with name.
func Register(name string, f Factory, caps Capability) error {
	if name == "" || f == nil {
		return fmt.Errorf("register %q: %w", name, ErrBackendUnavailable)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateBackend)
	}
	caps.Backend = name
	registry[name] = entry{factory: f, caps: caps}

	return nil
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Lookup returns the named backend configured with DefaultOptions.
func Lookup(name string) (Solver, error) {
	return New(WithBackend(name))
}

// New resolves opts over DefaultOptions and builds the selected backend.
func New(opts ...Option) (Solver, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if _, err := ParseSpectrum(string(o.Spectrum)); err != nil {
		return nil, err
	}
	registryMu.RLock()
	e, ok := registry[o.Backend]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", o.Backend, ErrBackendUnavailable)
	}

	return e.factory(o), nil
}
