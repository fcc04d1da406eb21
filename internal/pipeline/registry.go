package pipeline

import "fmt"

// Registry resolves stable step names to step functions. Registration happens
// once at startup; resolution results are cached so a step is looked up once
// per run no matter how many items it processes.
type Registry struct {
	factories map[string]Func
	resolved  map[string]Func
}

// NewRegistry returns an empty step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Func),
		resolved:  make(map[string]Func),
	}
}

// Register binds a step function to a name. Registering the same name twice
// replaces the earlier binding.
func (r *Registry) Register(name string, fn Func) {
	r.factories[name] = fn
	delete(r.resolved, name)
}

// Resolve returns the step function bound to name. Resolution is
// side-effect-free and cached; an unknown name yields ErrStepNotFound.
func (r *Registry) Resolve(name string) (Func, error) {
	if fn, ok := r.resolved[name]; ok {
		return fn, nil
	}
	fn, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStepNotFound, name)
	}
	r.resolved[name] = fn
	return fn, nil
}

// ResolveAll resolves an ordered list of step names into a concrete step
// list, failing on the first unknown name.
func (r *Registry) ResolveAll(names []string) ([]Step, error) {
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		fn, err := r.Resolve(name)
		if err != nil {
			return nil, err
		}
		steps = append(steps, Step{Name: name, Run: fn})
	}
	return steps, nil
}

// Availability reports whether a single step name resolved.
type Availability struct {
	Name string
	OK   bool
}

// Check probes the availability of every name without invoking any step.
// It never fails; unknown names are reported with OK set to false.
func (r *Registry) Check(names []string) []Availability {
	out := make([]Availability, 0, len(names))
	for _, name := range names {
		_, err := r.Resolve(name)
		out = append(out, Availability{Name: name, OK: err == nil})
	}
	return out
}
