// Package scroll implements the scroll controller (spec.md §4.6): the
// component that reconciles the host's bounded native scroll space with an
// arbitrarily large logical content space.
package scroll

import "git.sr.ht/~vlist/vlist/velocity"

// MaxVirtualSize is the reference browser element-size cap (spec.md §6):
// above this logical extent, a host's native scrollbar precision degrades
// or the host clamps the scrollable dimension outright, so the controller
// switches to compressed mode. Host bindings with a smaller native range
// (e.g. a terminal's row count) should pass their own cap instead of this
// default (vlist's Config.Scroll.VirtualCap); a cap many orders of
// magnitude smaller makes compressed mode trivially reachable in tests.
const MaxVirtualSize = 16_700_000.0

// Native abstracts the host's read/write scroll position primitive
// (scrollTop/scrollLeft in a DOM host, a viewport offset in a terminal
// host).
type Native interface {
	GetNativePosition() float64
	SetNativePosition(pos float64)
}

// Controller is the contract spec.md §4.6 exposes to the core: a
// logical-position read/write pair plus a check for whether a pending
// animated scroll was interrupted by user input.
type Controller interface {
	GetScrollTop() float64
	SetScrollTop(pos float64)
	// ScrollAborts reports whether a pending animated scroll should be
	// cancelled because a tracked velocity sample exceeded threshold. A
	// threshold <= 0 selects velocity.CancelVelocityThreshold.
	ScrollAborts(threshold float64) bool
	// RecordSample feeds a (position, time) sample to the controller's
	// internal velocity tracker; the host binding calls this once per
	// input event.
	RecordSample(pos, timeMs float64)
	// IsCompressed reports whether this controller is operating in
	// compressed mode.
	IsCompressed() bool
	// CompressionRatio returns virtualSize/actualSize, or 1 in native mode.
	CompressionRatio() float64
}

// FineMotion is implemented by compressed-mode controllers; host bindings
// type-assert a Controller to this interface to drive wheel-based fine
// motion (spec.md §4.6). Native-mode controllers do not implement it since
// native wheel scrolling needs no reconciliation.
type FineMotion interface {
	WheelDelta(deltaPx float64) (needsRecenter bool)
	CommitRecenter()
	SetFineMotionBand(fraction float64)
}

// NewController selects native or compressed mode based on actualSize vs
// virtualCap (pass scroll.MaxVirtualSize for a DOM-like host).
func NewController(host Native, actualSize, virtualCap float64) Controller {
	if actualSize <= virtualCap {
		return &nativeController{host: host, tracker: velocity.New(velocity.ScrollbarSampleCount, velocity.ScrollbarMinReliable)}
	}
	return newCompressed(host, actualSize, virtualCap)
}

// ---- Native mode ----

// nativeController implements 1:1 native-to-logical scroll mapping.
type nativeController struct {
	host    Native
	tracker *velocity.Tracker
}

func (n *nativeController) GetScrollTop() float64      { return n.host.GetNativePosition() }
func (n *nativeController) SetScrollTop(pos float64)   { n.host.SetNativePosition(pos) }
func (n *nativeController) IsCompressed() bool          { return false }
func (n *nativeController) CompressionRatio() float64   { return 1 }
func (n *nativeController) RecordSample(pos, t float64) { n.tracker.Record(pos, t) }
func (n *nativeController) ScrollAborts(threshold float64) bool {
	if threshold <= 0 {
		threshold = velocity.CancelVelocityThreshold
	}
	return n.tracker.Exceeds(threshold)
}

// ---- Compressed mode ----

// defaultFineMotionBand is the fraction of the native scroll range, centered on its
// midpoint, that the controller keeps the native thumb within during fine
// (wheel) motion before rescheduling a recenter. Spec.md §9 calls this an
// "empirical constant" implementers should expose as a config option; see
// feature/scale.
const defaultFineMotionBand = 0.5

// compressed implements the two-mode reconciliation described in spec.md
// §4.6: coarse jumps (scrollbar drag, scrollToIndex) map native position to
// logical position by the compression ratio; fine motion (wheel) advances
// logical position by real pixels and re-centers the native thumb within a
// safe middle band.
type compressed struct {
	host       Native
	actualSize float64
	virtualCap float64
	ratio      float64
	tracker    *velocity.Tracker

	logicalPos float64
	// fineMotionBand is the width (as a fraction of virtualCap) of the safe
	// zone the native thumb is recentered into after fine motion.
	fineMotionBand float64
	// pendingRecenter is true once a fine-motion step has moved the native
	// position outside the safe band and a recenter write is scheduled for
	// the next frame (via the host binding's rAF analog).
	pendingRecenter bool
}

func newCompressed(host Native, actualSize, virtualCap float64) *compressed {
	c := &compressed{
		host:           host,
		actualSize:     actualSize,
		virtualCap:     virtualCap,
		ratio:          virtualCap / actualSize,
		tracker:        velocity.New(velocity.ScrollbarSampleCount, velocity.ScrollbarMinReliable),
		fineMotionBand: defaultFineMotionBand,
	}
	c.logicalPos = host.GetNativePosition() / c.ratio
	return c
}

func (c *compressed) IsCompressed() bool        { return true }
func (c *compressed) CompressionRatio() float64 { return c.ratio }

// GetScrollTop returns the logical scroll position (spec.md: "the viewport
// is sized to virtualSize; the logical content is actualSize").
func (c *compressed) GetScrollTop() float64 {
	return c.logicalPos
}

// SetScrollTop performs a coarse jump: the caller (scrollToIndex, scrollbar
// drag, PgUp/PgDn) supplies a logical position; the native scrollbar is
// repositioned by the compression ratio.
func (c *compressed) SetScrollTop(logicalPos float64) {
	maxLogical := c.actualSize
	if logicalPos < 0 {
		logicalPos = 0
	}
	if logicalPos > maxLogical {
		logicalPos = maxLogical
	}
	c.logicalPos = logicalPos
	c.host.SetNativePosition(logicalPos * c.ratio)
	c.pendingRecenter = false
}

// WheelDelta advances the logical position by deltaPx real pixels,
// independent of the compression ratio (spec.md scenario 3: "wheel
// scrolling one notch advances exactly deltaY logical pixels independent of
// the ratio"). It recenters the native position within the safe middle band
// and reports whether a recenter write should be scheduled on the next
// frame rather than applied immediately, so it doesn't fight the host's own
// scroll handling mid-gesture.
func (c *compressed) WheelDelta(deltaPx float64) (needsRecenter bool) {
	c.logicalPos += deltaPx
	if c.logicalPos < 0 {
		c.logicalPos = 0
	}
	if c.logicalPos > c.actualSize {
		c.logicalPos = c.actualSize
	}

	bandHalf := (c.virtualCap * c.fineMotionBand) / 2
	mid := c.virtualCap / 2
	nativePos := c.host.GetNativePosition()
	if nativePos < mid-bandHalf || nativePos > mid+bandHalf {
		c.pendingRecenter = true
	}
	return c.pendingRecenter
}

// CommitRecenter performs the deferred native-position recenter that
// WheelDelta flagged as pending. Host bindings call this from their rAF
// callback once per frame, never synchronously inside the wheel handler, so
// a rapid run of wheel events schedules at most one native write per frame.
func (c *compressed) CommitRecenter() {
	if !c.pendingRecenter {
		return
	}
	c.host.SetNativePosition(c.virtualCap / 2)
	c.pendingRecenter = false
}

func (c *compressed) RecordSample(pos, t float64) { c.tracker.Record(pos, t) }

func (c *compressed) ScrollAborts(threshold float64) bool {
	if threshold <= 0 {
		threshold = velocity.CancelVelocityThreshold
	}
	return c.tracker.Exceeds(threshold)
}

// SetFineMotionBand overrides the default fine-motion band width, exposed
// as a config option per spec.md §9.
func (c *compressed) SetFineMotionBand(fraction float64) {
	if fraction <= 0 || fraction > 1 {
		return
	}
	c.fineMotionBand = fraction
}
