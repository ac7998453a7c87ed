package modal

// LayoutChange describes how a measurement differed from the previous one.
type LayoutChange struct {
	// Initial is set on the first measurement of either size.
	Initial bool
	// WidthChanged and HeightChanged compare against the previous value of
	// the same size.
	WidthChanged  bool
	HeightChanged bool
}

// Changed reports whether either axis changed.
func (c LayoutChange) Changed() bool {
	return c.WidthChanged || c.HeightChanged
}

// LayoutTracker holds the last measured content and container sizes.
// Both start at the screen size until measured.
type LayoutTracker struct {
	content     Size
	container   Size
	initialized bool
}

// NewLayoutTracker creates a tracker seeded with screen for both sizes.
func NewLayoutTracker(screen Size) *LayoutTracker {
	return &LayoutTracker{content: screen, container: screen}
}

// OnContentMeasured records the modal's own measured size.
func (t *LayoutTracker) OnContentMeasured(size Size) LayoutChange {
	return t.measure(&t.content, size)
}

// OnContainerMeasured records the available container size.
func (t *LayoutTracker) OnContainerMeasured(size Size) LayoutChange {
	return t.measure(&t.container, size)
}

func (t *LayoutTracker) measure(dst *Size, size Size) LayoutChange {
	change := LayoutChange{
		Initial:       !t.initialized,
		WidthChanged:  size.Width != dst.Width,
		HeightChanged: size.Height != dst.Height,
	}
	t.initialized = true
	*dst = size
	return change
}

// Initialized reports whether any measurement has arrived.
func (t *LayoutTracker) Initialized() bool { return t.initialized }

// Content returns the last content size.
func (t *LayoutTracker) Content() Size { return t.content }

// Container returns the last container size.
func (t *LayoutTracker) Container() Size { return t.container }

// OffsetX returns the horizontal offset that centers the content in the
// container.
func (t *LayoutTracker) OffsetX() float64 {
	return (t.container.Width - t.content.Width) / 2
}
