package depthrgb

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownTranscoder is returned when a name is not present in a Registry.
var ErrUnknownTranscoder = errors.New("depthrgb: unknown transcoder")

// Registry maps transcoder names to constructors. Registries are plain values
// that callers build and pass around, there is no package level instance.
type Registry struct {
	names     []string
	factories map[string]func() Transcoder
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() Transcoder)}
}

// Register adds a named constructor. Names must be unique.
func (r *Registry) Register(name string, factory func() Transcoder) error {
	if name == "" || factory == nil {
		return fmt.Errorf("cannot register transcoder with empty name or nil factory")
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("a transcoder named %#v is already registered", name)
	}
	r.names = append(r.names, name)
	r.factories[name] = factory
	return nil
}

// New constructs the transcoder registered under name.
func (r *Registry) New(name string) (Transcoder, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %#v (known: %v)", ErrUnknownTranscoder, name, r.names)
	}
	return f(), nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// DefaultRegistry returns a new Registry holding every transcoder in this
// package.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, x := range []struct {
		name    string
		factory func() Transcoder
	}{
		{"grayscale", func() Transcoder { return Grayscale{} }},
		{"wrapbit", func() Transcoder { return WrapBit{} }},
		{"halftone-cheat", func() Transcoder { return HalftoneFixedMax{} }},
		{"halftone", func() Transcoder { return HalftoneEmbeddedMax{} }},
	} {
		if err := r.Register(x.name, x.factory); err != nil {
			panic(err)
		}
	}
	return r
}
