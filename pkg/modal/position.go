package modal

import (
	"fmt"
	"strings"
)

// Anchor is where the modal rests when fully open.
type Anchor int

const (
	// AnchorCenter centers the modal vertically in its container.
	AnchorCenter Anchor = iota
	// AnchorTop rests the modal flush with the top of its container.
	AnchorTop
	// AnchorBottom rests the modal flush with the bottom of its container.
	AnchorBottom
)

func (a Anchor) String() string {
	switch a {
	case AnchorCenter:
		return "center"
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
}

// ParseAnchor parses "top", "bottom" or "center" (case-insensitive).
func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "center", "":
		return AnchorCenter, nil
	case "top":
		return AnchorTop, nil
	case "bottom":
		return AnchorBottom, nil
	default:
		return AnchorCenter, fmt.Errorf("unknown anchor %q", s)
	}
}

// Entry is the edge the modal slides in from and leaves through.
type Entry int

const (
	// EntryAuto uses the top edge for top-anchored modals and the bottom
	// edge otherwise.
	EntryAuto Entry = iota
	// EntryBottom slides in from below the container.
	EntryBottom
	// EntryTop slides in from above the container.
	EntryTop
)

func (e Entry) String() string {
	switch e {
	case EntryAuto:
		return "auto"
	case EntryBottom:
		return "bottom"
	case EntryTop:
		return "top"
	default:
		return fmt.Sprintf("Entry(%d)", int(e))
	}
}

// ParseEntry parses "auto", "top" or "bottom" (case-insensitive).
func ParseEntry(s string) (Entry, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return EntryAuto, nil
	case "top":
		return EntryTop, nil
	case "bottom":
		return EntryBottom, nil
	default:
		return EntryAuto, fmt.Errorf("unknown entry %q", s)
	}
}

// Resolve returns the concrete entry edge for a modal with the given anchor.
func (e Entry) Resolve(anchor Anchor) Entry {
	if e != EntryAuto {
		return e
	}
	if anchor == AnchorTop {
		return EntryTop
	}
	return EntryBottom
}

// Size is a measured width and height.
type Size struct {
	Width, Height float64
}

// RestingPosition returns the vertical offset at which content of the given
// size rests inside a container of height containerHeight. The result is
// never negative.
func RestingPosition(anchor Anchor, content Size, containerHeight float64) float64 {
	var pos float64
	switch anchor {
	case AnchorBottom:
		pos = containerHeight - content.Height
	case AnchorCenter:
		pos = containerHeight/2 - content.Height/2
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// ClosedPosition returns the off-screen offset for a modal leaving through
// entry. Unresolved EntryAuto is treated as EntryBottom.
func ClosedPosition(entry Entry, containerHeight float64) float64 {
	if entry == EntryTop {
		return -containerHeight
	}
	return containerHeight
}

// KeyboardRestingPosition is RestingPosition for a container whose bottom
// keyboardOffset points are covered by the on-screen keyboard. While the
// keyboard covers any of the container, the result is never less than
// minTop.
func KeyboardRestingPosition(anchor Anchor, content Size, containerHeight, keyboardOffset, minTop float64) float64 {
	pos := RestingPosition(anchor, content, containerHeight-keyboardOffset)
	if keyboardOffset != 0 && pos < minTop {
		pos = minTop
	}
	return pos
}
