package operation

import (
	"fmt"
	"sync"
)

// Registry holds the enabled operations by name, in registration order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	ops   map[string]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]Descriptor)}
}

// NewRegistryFrom registers descs except those named in disabled. Names in
// disabled that match no descriptor are returned so the caller can warn.
func NewRegistryFrom(descs []Descriptor, disabled []string) (*Registry, []string, error) {
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	r := NewRegistry()
	for _, d := range descs {
		if skip[d.Name] {
			delete(skip, d.Name)
			continue
		}
		if err := r.Register(d); err != nil {
			return nil, nil, err
		}
	}

	var unknown []string
	for _, name := range disabled {
		if skip[name] {
			unknown = append(unknown, name)
			delete(skip, name)
		}
	}
	return r, unknown, nil
}

func (r *Registry) Register(d Descriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.Name == "" {
		return fmt.Errorf("operation name is required")
	}
	if _, exists := r.ops[d.Name]; exists {
		return fmt.Errorf("operation already registered: %s", d.Name)
	}
	r.ops[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

func (r *Registry) Get(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.ops[name]
	return d, ok
}

// Lookup is Get returning ErrUnknownOperation for a missing name.
func (r *Registry) Lookup(name string) (Descriptor, error) {
	d, ok := r.Get(name)
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
	return d, nil
}

func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.ops[name])
	}
	return out
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}
