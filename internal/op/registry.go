package op

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/phany/internal/pixel"
)

// Canonical is the working format of the decode-time pipeline: normalized
// float RGBA, one Quad per pixel.
type Canonical = pixel.Image[float32, pixel.Quad[float32]]

// Entry is a registered operation bound to the Canonical format.
type Entry struct {
	Info Info

	// Apply runs the precise in-place variant.
	Apply func(img *Canonical) error

	// ApplyFast runs the fast in-place variant. The caller is expected to
	// have checked the image with Apply's preconditions.
	ApplyFast func(img *Canonical)
}

// Bind adapts an in-place operation on the Canonical format into an Entry
// registered under name.
func Bind(name string, o InPlace[float32, pixel.Quad[float32]]) Entry {
	info := o.Info()
	info.Name = name
	return Entry{
		Info:      info,
		Apply:     o.PipeInPlace,
		ApplyFast: o.PipeInPlaceFast,
	}
}

// Registry holds named operations for discovery and pipeline configuration.
// It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds an entry. Names must be unique and non-empty.
func (r *Registry) Register(e Entry) error {
	if e.Info.Name == "" {
		return fmt.Errorf("operation name is empty")
	}
	if e.Apply == nil || e.ApplyFast == nil {
		return fmt.Errorf("operation %s: missing variant", e.Info.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[e.Info.Name]; ok {
		return fmt.Errorf("operation %s already registered", e.Info.Name)
	}
	r.entries[e.Info.Name] = e
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	return e, ok
}

// List returns the metadata of all entries sorted by name.
func (r *Registry) List() []Info {
	r.mu.RLock()
	infos := make([]Info, 0, len(r.entries))
	for _, e := range r.entries {
		infos = append(infos, e.Info)
	}
	r.mu.RUnlock()

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Resolve looks up every name in order, failing on the first unknown one.
func (r *Registry) Resolve(names []string) ([]Entry, error) {
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		e, ok := r.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown operation: %s", name)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Builtin returns a registry populated with the built-in operations.
func Builtin() *Registry {
	r := NewRegistry()
	for _, e := range []Entry{
		Bind("gamma-decode", GammaDecode[float32, pixel.Quad[float32]]{}),
		Bind("gamma-encode-2.2", GammaEncode[float32, pixel.Quad[float32]]{Exponent: 2.2}),
		Bind("srgb-linearize", SRGBLinearize[float32, pixel.Quad[float32]]{}),
		Bind("srgb-delinearize", SRGBDelinearize[float32, pixel.Quad[float32]]{}),
	} {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}
