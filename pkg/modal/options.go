package modal

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/errors"
)

// KeyboardNotifier delivers on-screen keyboard frame changes and hides.
// screenY is the top edge of the keyboard in container coordinates.
// platform.KeyboardService implements it.
type KeyboardNotifier interface {
	Subscribe(onFrame func(screenY float64), onHide func()) (cancel func())
}

// BackButton dispatches hardware back presses. A handler returns true when
// it consumed the press. platform.BackButtonService implements it.
type BackButton interface {
	AddHandler(handler func() bool) (remove func())
}

// PresentationHost is the full-screen surface a cover-screen modal is
// mounted on. onRequestClose is called when the surface asks to be
// dismissed. platform.PresentationService implements it.
type PresentationHost interface {
	Show(onRequestClose func())
	Hide()
}

// Options configures a Modal. Start from DefaultOptions; the zero value
// disables swiping, the backdrop and the backdrop tap.
type Options struct {
	// Anchor is where the modal rests when open.
	Anchor Anchor
	// Entry is the edge the modal slides in from and leaves through.
	Entry Entry

	// SwipeToClose enables the vertical swipe-to-close gesture.
	SwipeToClose bool
	// SwipeThreshold is the drag distance past which releasing closes.
	SwipeThreshold float64
	// SwipeArea limits gesture capture to starts within this distance of
	// the modal's top edge. Zero means unlimited.
	SwipeArea float64

	// Backdrop enables the dimming backdrop.
	Backdrop bool
	// BackdropOpacity is the backdrop opacity when fully open, in [0, 1].
	BackdropOpacity float64
	// BackdropColor is passed through to hosts that draw the backdrop.
	BackdropColor string
	// BackdropPressToClose closes the modal on TapBackdrop.
	BackdropPressToClose bool

	// AnimationDuration is the length of every timed transition.
	AnimationDuration time.Duration
	// Easing shapes every timed transition. Nil means linear.
	Easing func(float64) float64

	// Disabled suppresses opening, closing and swiping.
	Disabled bool
	// KeyboardTopOffset is the smallest resting position allowed while the
	// keyboard is shown.
	KeyboardTopOffset float64
	// CoverScreen mounts the modal on Host instead of rendering inline.
	CoverScreen bool
	// StartOpen places the modal open on its first layout, without animating.
	StartOpen bool
	// BackButtonClose closes the modal on hardware back presses and on
	// close requests from Host.
	BackButtonClose bool
	// ScreenSize seeds content and container sizes until they are measured.
	ScreenSize Size

	// Optional collaborators.
	Keyboard   KeyboardNotifier
	BackButton BackButton
	Host       PresentationHost

	// Logger receives debug records. Nil discards them.
	Logger *slog.Logger

	OnOpened            func()
	OnClosed            func()
	OnClosingState      func(closing bool)
	OnVisibilityChanged func(visible bool)
	OnLayout            func(container Size)
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Anchor:               AnchorCenter,
		Entry:                EntryAuto,
		SwipeToClose:         true,
		SwipeThreshold:       50,
		Backdrop:             true,
		BackdropOpacity:      0.5,
		BackdropColor:        "black",
		BackdropPressToClose: true,
		AnimationDuration:    400 * time.Millisecond,
		Easing:               animation.DefaultElastic,
		KeyboardTopOffset:    22,
		ScreenSize:           Size{Width: 390, Height: 844},
	}
}

// Validate reports the first invalid field as an errors.KindConfig error.
func (o Options) Validate() error {
	var err error
	switch {
	case o.Anchor < AnchorCenter || o.Anchor > AnchorBottom:
		err = fmt.Errorf("unknown anchor %v", o.Anchor)
	case o.Entry < EntryAuto || o.Entry > EntryTop:
		err = fmt.Errorf("unknown entry %v", o.Entry)
	case o.SwipeThreshold < 0 || math.IsNaN(o.SwipeThreshold):
		err = fmt.Errorf("swipe threshold must not be negative, got %v", o.SwipeThreshold)
	case o.SwipeArea < 0 || math.IsNaN(o.SwipeArea):
		err = fmt.Errorf("swipe area must not be negative, got %v", o.SwipeArea)
	case !(o.BackdropOpacity >= 0 && o.BackdropOpacity <= 1):
		err = fmt.Errorf("backdrop opacity must be within [0, 1], got %v", o.BackdropOpacity)
	case o.AnimationDuration < 0:
		err = fmt.Errorf("animation duration must not be negative, got %v", o.AnimationDuration)
	case o.KeyboardTopOffset < 0 || math.IsNaN(o.KeyboardTopOffset):
		err = fmt.Errorf("keyboard top offset must not be negative, got %v", o.KeyboardTopOffset)
	case !(o.ScreenSize.Width >= 0 && o.ScreenSize.Height >= 0):
		err = fmt.Errorf("screen size must not be negative, got %vx%v", o.ScreenSize.Width, o.ScreenSize.Height)
	}
	if err != nil {
		return &errors.ModalError{Op: "modal.Options.Validate", Kind: errors.KindConfig, Err: err}
	}
	return nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
