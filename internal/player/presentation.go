package player

// Presentation carries the breakpoint-driven sizing that used to live in
// near-duplicate player variants. One controller consumes one of these
// instead of shipping parallel implementations per screen size.
type Presentation struct {
	// CompactBreakpointPx is the viewport width below which the compact
	// layout applies.
	CompactBreakpointPx int
	ControlSizePx       int
	OverlayTextScale    float64
	ShowVolumeSlider    bool
}

// DefaultPresentation returns the regular desktop sizing.
func DefaultPresentation() Presentation {
	return Presentation{
		CompactBreakpointPx: 768,
		ControlSizePx:       48,
		OverlayTextScale:    1.0,
		ShowVolumeSlider:    true,
	}
}

// ForViewport picks sizing for the given viewport width.
func ForViewport(widthPx int) Presentation {
	p := DefaultPresentation()
	if widthPx > 0 && widthPx < p.CompactBreakpointPx {
		p.ControlSizePx = 40
		p.OverlayTextScale = 0.85
		p.ShowVolumeSlider = false
	}
	return p
}
