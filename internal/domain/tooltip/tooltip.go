// Package tooltip models the single floating overlay a chart page shows while
// the pointer rests on a mark.
package tooltip

import (
	"fmt"
	"maps"

	"github.com/okian/vizpages/internal/domain/format"
)

// State is the visibility of a tooltip.
type State int

const (
	Hidden State = iota
	Shown
)

func (s State) String() string {
	if s == Shown {
		return "shown"
	}
	return "hidden"
}

// MarshalText lets State appear as a string in JSON.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	switch string(b) {
	case "shown":
		*s = Shown
	case "hidden":
		*s = Hidden
	default:
		return fmt.Errorf("tooltip: unknown state %q", b)
	}
	return nil
}

// Anchor selects what the tooltip is positioned against.
type Anchor int

const (
	// AnchorPointer places the tooltip at the pointer plus an offset.
	AnchorPointer Anchor = iota
	// AnchorNorth centres the tooltip above the hovered mark.
	AnchorNorth
)

func (a Anchor) String() string {
	if a == AnchorNorth {
		return "north"
	}
	return "pointer"
}

func (a Anchor) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// Pointer is a pointer position relative to the chart container.
type Pointer struct {
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

// Box is the bounding box of the hovered mark in chart coordinates.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placement holds the per-page positioning rules.
type Placement struct {
	Anchor Anchor `json:"anchor"`
	// DX and DY shift the tooltip from the pointer or anchor point.
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
	// Top, when set, pins the CSS top (e.g. "70%") instead of following the
	// pointer. It is also the top the tooltip returns to when hidden.
	Top string `json:"top,omitempty"`
	// Opacity is the CSS opacity while shown.
	Opacity string `json:"opacity,omitempty"`
	// HiddenOpacity is the CSS opacity while hidden; empty removes the
	// property so the stylesheet decides.
	HiddenOpacity string `json:"hiddenOpacity,omitempty"`
}

// Update is what a mark hands the controller on pointer enter.
type Update struct {
	HTML    string
	Data    map[string]string
	Pointer Pointer
	Target  Box
}

// Snapshot is the rendered tooltip state: everything a browser needs to
// style the overlay element.
type Snapshot struct {
	State     State             `json:"state"`
	HTML      string            `json:"html"`
	Left      string            `json:"left"`
	Top       string            `json:"top"`
	Transform string            `json:"transform,omitempty"`
	Opacity   string            `json:"opacity,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
}

const origin = "0px"

// northTransform moves the box so its bottom centre sits on the anchor point.
const northTransform = "translate(-50%, -100%)"

// Controller owns one tooltip. It is not safe for concurrent use; each viewer
// gets its own controller.
type Controller struct {
	placement Placement
	snap      Snapshot
	observers []func(from, to State)
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers fn to be called on every Show and Hide.
func WithObserver(fn func(from, to State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// NewController returns a hidden tooltip that positions itself by p.
func NewController(p Placement, opts ...Option) *Controller {
	c := &Controller{placement: p}
	for _, opt := range opts {
		opt(c)
	}
	c.snap = c.hidden()
	return c
}

// Show moves the tooltip to SHOWN with the update's content and position.
// A later call replaces everything an earlier one set.
func (c *Controller) Show(u Update) {
	from := c.snap.State
	p := c.placement
	s := Snapshot{
		State:   Shown,
		HTML:    u.HTML,
		Opacity: p.Opacity,
		Data:    maps.Clone(u.Data),
	}
	switch p.Anchor {
	case AnchorNorth:
		s.Left = px(u.Target.X + u.Target.Width/2 + p.DX)
		s.Top = px(u.Target.Y + p.DY)
		s.Transform = northTransform
	default:
		s.Left = px(u.Pointer.OffsetX + p.DX)
		s.Top = px(u.Pointer.OffsetY + p.DY)
	}
	if p.Top != "" {
		s.Top = p.Top
	}
	c.snap = s
	c.notify(from, Shown)
}

// Hide moves the tooltip to HIDDEN, clearing content and data and resetting
// the position.
func (c *Controller) Hide() {
	from := c.snap.State
	c.snap = c.hidden()
	c.notify(from, Hidden)
}

// State reports the current visibility.
func (c *Controller) State() State { return c.snap.State }

// Placement returns the positioning rules.
func (c *Controller) Placement() Placement { return c.placement }

// Snapshot returns a copy of the current tooltip state.
func (c *Controller) Snapshot() Snapshot {
	s := c.snap
	s.Data = maps.Clone(c.snap.Data)
	return s
}

func (c *Controller) hidden() Snapshot {
	top := origin
	if c.placement.Top != "" {
		top = c.placement.Top
	}
	return Snapshot{State: Hidden, Left: origin, Top: top, Opacity: c.placement.HiddenOpacity}
}

func (c *Controller) notify(from, to State) {
	for _, fn := range c.observers {
		fn(from, to)
	}
}

func px(v float64) string { return format.JSNumber(v) + "px" }
