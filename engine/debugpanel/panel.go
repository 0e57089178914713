// Package debugpanel exposes live-tweakable scene parameters over HTTP.
//
// Controls are registered on the render thread with accessors bound to scene
// objects. Values arrive from other goroutines through Apply, which validates
// and queues them; Flush, called once per frame on the render thread, hands
// them to the accessors. Accessors are never called off the render thread
// after registration.
package debugpanel

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/chipview/common"
)

var (
	// ErrUnknownControl is returned for a name no control was registered under.
	ErrUnknownControl = errors.New("unknown control")
	// ErrInvalidValue is returned for a value the control cannot take.
	ErrInvalidValue = errors.New("invalid value")
)

// NumberAccessor binds a numeric control to a property.
type NumberAccessor interface {
	Get() float64
	Set(v float64)
}

// ColorAccessor binds a color control to a property. Colors are "#rrggbb".
type ColorAccessor interface {
	Get() string
	Set(hex string) error
}

// ControlKind identifies the editor a control is shown with.
type ControlKind string

const (
	KindNumber ControlKind = "number"
	KindColor  ControlKind = "color"
)

// Control is the client-facing state of one control.
type Control struct {
	Name  string      `json:"name"`
	Kind  ControlKind `json:"kind"`
	Value any         `json:"value"`
	Min   float64     `json:"min"`
	Max   float64     `json:"max"`
	Step  float64     `json:"step,omitempty"`
}

type binding struct {
	control Control
	number  NumberAccessor
	color   ColorAccessor
}

type change struct {
	name   string
	number float64
	color  string
}

// panel is the implementation of the Panel interface.
type panel struct {
	mu *sync.Mutex

	title    string
	order    []string
	bindings map[string]*binding
	pending  []change
}

// Panel is a set of named controls bound to scene properties.
type Panel interface {
	// Title returns the heading shown on the panel page.
	Title() string

	// AddNumber registers a numeric control clamped to [min, max].
	//
	// Parameters:
	//   - name: unique control name
	//   - acc: the bound property
	//   - min, max: the allowed range
	//   - step: the editor increment, 0 for continuous
	//
	// Returns:
	//   - error: if name is taken or the range is empty
	AddNumber(name string, acc NumberAccessor, min, max, step float64) error

	// AddColor registers a color control.
	//
	// Parameters:
	//   - name: unique control name
	//   - acc: the bound property
	//
	// Returns:
	//   - error: if name is taken
	AddColor(name string, acc ColorAccessor) error

	// Snapshot returns every control in registration order.
	Snapshot() []Control

	// Control returns one control by name.
	Control(name string) (Control, bool)

	// Apply validates a value for the named control and queues it for the
	// next Flush. Numbers are clamped to the control's range; colors are
	// normalized to "#rrggbb".
	//
	// Parameters:
	//   - name: the control to change
	//   - value: a JSON number or string
	//
	// Returns:
	//   - error: ErrUnknownControl or ErrInvalidValue, wrapped
	Apply(name string, value json.RawMessage) error

	// Flush hands queued values to their accessors. Must be called on the
	// thread that owns the bound objects.
	//
	// Returns:
	//   - int: the number of changes applied
	Flush() int
}

var _ Panel = &panel{}

// NewPanel creates an empty panel.
//
// Parameters:
//   - options: variadic list of PanelBuilderOption functions
//
// Returns:
//   - Panel: the new panel
func NewPanel(options ...PanelBuilderOption) Panel {
	p := &panel{
		mu:       &sync.Mutex{},
		title:    "chipview",
		bindings: make(map[string]*binding),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *panel) Title() string {
	return p.title
}

func (p *panel) AddNumber(name string, acc NumberAccessor, min, max, step float64) error {
	if !(min <= max) {
		return fmt.Errorf("control %q: empty range [%g, %g]", name, min, max)
	}
	return p.add(&binding{
		control: Control{
			Name:  name,
			Kind:  KindNumber,
			Value: common.Clamp(acc.Get(), min, max),
			Min:   min,
			Max:   max,
			Step:  step,
		},
		number: acc,
	})
}

func (p *panel) AddColor(name string, acc ColorAccessor) error {
	return p.add(&binding{
		control: Control{Name: name, Kind: KindColor, Value: acc.Get()},
		color:   acc,
	})
}

func (p *panel) add(b *binding) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	name := b.control.Name
	if name == "" {
		return errors.New("control name is empty")
	}
	if _, ok := p.bindings[name]; ok {
		return fmt.Errorf("control %q already registered", name)
	}
	p.bindings[name] = b
	p.order = append(p.order, name)
	return nil
}

func (p *panel) Snapshot() []Control {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Control, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.bindings[name].control)
	}
	return out
}

func (p *panel) Control(name string) (Control, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	b, ok := p.bindings[name]
	if !ok {
		return Control{}, false
	}
	return b.control, true
}

func (p *panel) Apply(name string, value json.RawMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	b, ok := p.bindings[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}

	c := change{name: name}
	switch b.control.Kind {
	case KindNumber:
		var v float64
		if err := json.Unmarshal(value, &v); err != nil {
			return fmt.Errorf("%w: %s wants a number", ErrInvalidValue, name)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidValue, name)
		}
		c.number = common.Clamp(v, b.control.Min, b.control.Max)
		b.control.Value = c.number
	case KindColor:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return fmt.Errorf("%w: %s wants a color string", ErrInvalidValue, name)
		}
		col, err := common.ParseColor(s)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		c.color = col.String()
		b.control.Value = c.color
	}

	p.pending = append(p.pending, c)
	return nil
}

func (p *panel) Flush() int {
	p.mu.Lock()
	pending := p.pending
	p.pending = nil
	bindings := make([]*binding, len(pending))
	for i, c := range pending {
		bindings[i] = p.bindings[c.name]
	}
	p.mu.Unlock()

	applied := 0
	for i, c := range pending {
		b := bindings[i]
		if b.number != nil {
			b.number.Set(c.number)
			applied++
			continue
		}
		if err := b.color.Set(c.color); err == nil {
			applied++
		}
	}
	return applied
}
