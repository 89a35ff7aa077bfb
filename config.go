package vlist

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"git.sr.ht/~vlist/vlist/pool"
	"git.sr.ht/~vlist/vlist/render"
	"git.sr.ht/~vlist/vlist/sizecache"
	"git.sr.ht/~vlist/vlist/viewport"
)

// SizeKind selects which sizing mode (spec.md §4.1) an ItemSizing uses.
type SizeKind uint8

const (
	SizeFixed SizeKind = iota
	SizeVariable
	SizeMeasured
)

// ItemSizing configures the size cache for the main axis.
type ItemSizing struct {
	Kind SizeKind `validate:"-"`
	// Fixed is used when Kind == SizeFixed.
	Fixed float64 `validate:"required_if=Kind 0,gte=0"`
	// VariableFunc is used when Kind == SizeVariable.
	VariableFunc sizecache.SizeFunc `validate:"-"`
	// Estimated is the initial size used by Kind == SizeMeasured until the
	// host measures the real size.
	Estimated float64 `validate:"gte=0"`
}

// Config is the abridged configuration shape from spec.md §6, made
// concrete. N is the host's node type, T the caller's item type.
type Config[N render.Node, T any] struct {
	// Container is either a selector string or an opaque host reference;
	// Resolve interprets it. Resolution happens at Build() time per
	// spec.md §6; an unresolvable container is a configuration error.
	Container interface{} `validate:"required"`
	// Resolve turns Container into a host Scaffold. Required: there is no
	// portable default since "the DOM" differs per host binding.
	Resolve func(container interface{}) (*Scaffold[N], error) `validate:"required"`

	Items []T `validate:"-"`

	Item struct {
		Sizing   ItemSizing         `validate:"-"`
		Template render.Template[T] `validate:"required"`
	}

	Orientation viewport.Orientation `validate:"oneof=0 1"`
	Reverse     bool

	Overscan    int `validate:"gte=0"`
	ClassPrefix string
	AriaLabel   string
	AriaIDPrefix string

	Scroll struct {
		Wheel       bool
		Wrap        bool
		IdleTimeout float64 `validate:"gte=0"`
		// VirtualCap overrides scroll.MaxVirtualSize; host bindings with a
		// smaller native scroll range (e.g. hosts/term) set this much
		// lower so compressed mode is reachable without huge item counts.
		VirtualCap float64 `validate:"gte=0"`
	}

	Pool struct {
		MaxSize int `validate:"gte=0"`
	}

	IDOf     render.IDFunc[T]
	Allocate render.Allocator[T]

	Logger Logger `validate:"-"`
}

// DefaultConfig returns a Config with spec.md §6's documented defaults
// applied. Callers still must set Container, Resolve, and Item.Template.
func DefaultConfig[N render.Node, T any]() Config[N, T] {
	var c Config[N, T]
	c.Overscan = rangemathDefaultOverscan
	c.Pool.MaxSize = pool.DefaultMax
	c.Scroll.Wheel = true
	c.Scroll.IdleTimeout = 150
	return c
}

const rangemathDefaultOverscan = 3

var validate = validator.New()

// Validate applies struct-tag validation (spec.md §7 "configuration
// errors... thrown synchronously from build()"). It is invoked by Build()
// and returns a wrapped error reporting every struct-tag violation found.
func (c *Config[N, T]) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("vlist: invalid config: %w", err)
	}
	if c.Orientation != viewport.Vertical && c.Orientation != viewport.Horizontal {
		return fmt.Errorf("vlist: invalid orientation %v", c.Orientation)
	}
	return nil
}

// LoadYAMLSizing unmarshals a YAML document into a plain struct describing
// fixed/estimated sizing (VariableFunc cannot round-trip through YAML, so
// file-based configuration is limited to the fixed and measured-estimate
// cases). Useful for hosts that want file-driven configuration, such as the
// hosts/term demo list; programmatic callers should just set ItemSizing
// directly.
func LoadYAMLSizing(doc []byte) (ItemSizing, error) {
	var raw struct {
		Kind      string  `yaml:"kind"`
		Fixed     float64 `yaml:"fixed"`
		Estimated float64 `yaml:"estimated"`
	}
	if err := yaml.Unmarshal(doc, &raw); err != nil {
		return ItemSizing{}, fmt.Errorf("vlist: parsing yaml sizing config: %w", err)
	}
	sizing := ItemSizing{Fixed: raw.Fixed, Estimated: raw.Estimated}
	switch raw.Kind {
	case "", "fixed":
		sizing.Kind = SizeFixed
	case "measured":
		sizing.Kind = SizeMeasured
	default:
		return ItemSizing{}, fmt.Errorf("vlist: unknown sizing kind %q", raw.Kind)
	}
	return sizing, nil
}

// Scaffold bundles the host-specific primitives the core needs: the
// viewport's scrollable node, the items container that stages/flushes
// rendered nodes, and the current container dimensions. Host bindings
// (hosts/gio, hosts/term) construct one per list instance inside their
// Resolve implementation.
type Scaffold[N render.Node] struct {
	// ScrollHost exposes the host's native scroll position read/write.
	ScrollHost ScrollNative
	// ItemsContainer batches rendered node insertion (spec.md: one
	// reflow per frame).
	ItemsContainer render.Container[N]
	// MainSize and CrossSize read the current viewport dimensions.
	MainSize  func() float64
	CrossSize func() float64
	// NewNode allocates a brand-new host node for the pool. Required: N is
	// opaque to the engine, so only the host binding can construct one.
	NewNode func() N
	// ResetNode clears a node's identity attributes/state before it
	// re-enters the pool. May be nil if the node type needs no reset
	// beyond what Renderer already overwrites on reuse.
	ResetNode func(N)
	// Detach tears down the scaffold's DOM subtree (used by Destroy).
	Detach func()
}

// ScrollNative is an interface type declared locally rather than imported
// from the scroll package; it has the same method set as scroll.Native, so
// a value of either type satisfies the other.
type ScrollNative interface {
	GetNativePosition() float64
	SetNativePosition(pos float64)
}
