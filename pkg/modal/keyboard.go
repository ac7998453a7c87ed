package modal

// KeyboardCoordinator tracks how much of the container the on-screen
// keyboard covers. It only follows frame changes while the modal is open.
type KeyboardCoordinator struct {
	offset          float64
	active          func() bool
	containerHeight func() float64
	onChange        func()
}

// NewKeyboardCoordinator creates a coordinator. active gates frame changes,
// containerHeight reads the current container height and onChange is called
// whenever the offset changes.
func NewKeyboardCoordinator(active func() bool, containerHeight func() float64, onChange func()) *KeyboardCoordinator {
	return &KeyboardCoordinator{
		active:          active,
		containerHeight: containerHeight,
		onChange:        onChange,
	}
}

// OnFrameChange records a keyboard whose top edge sits at keyboardTopY.
func (k *KeyboardCoordinator) OnFrameChange(keyboardTopY float64) {
	if !k.active() {
		return
	}
	k.set(max(k.containerHeight()-keyboardTopY, 0))
}

// OnHide records that the keyboard is gone.
func (k *KeyboardCoordinator) OnHide() {
	k.set(0)
}

// Offset returns the height of the container covered by the keyboard.
func (k *KeyboardCoordinator) Offset() float64 {
	return k.offset
}

func (k *KeyboardCoordinator) set(offset float64) {
	if offset == k.offset {
		return
	}
	k.offset = offset
	if k.onChange != nil {
		k.onChange()
	}
}
