package codec

import (
	"fmt"
	"slices"
)

// Registry maps codec names to codecs.
type Registry struct {
	names  []string
	codecs map[string]Codec
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Codec)}
}

// Register adds c under c.Name(), replacing any codec of the same name.
func (r *Registry) Register(c Codec) {
	if _, exists := r.codecs[c.Name()]; !exists {
		r.names = append(r.names, c.Name())
	}
	r.codecs[c.Name()] = c
}

func (r *Registry) Get(name string) (Codec, error) {
	c, ok := r.codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %#v (known: %v)", ErrUnknownCodec, name, r.names)
	}
	return c, nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Default returns a new Registry holding every codec in this package. The
// first entry, jpeg, is the reference lossy codec.
func Default() *Registry {
	r := NewRegistry()
	for _, c := range []Codec{
		JPEG{}, JPEGBaseline{}, JPEGLS{},
		PNG{}, TIFF{}, BMP{},
		Zstd{}, S2{}, LZ4{},
	} {
		r.Register(c)
	}
	return r
}
