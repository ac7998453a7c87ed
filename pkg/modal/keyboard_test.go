package modal

import "testing"

func TestKeyboardCoordinator(t *testing.T) {
	active := false
	changes := 0
	k := NewKeyboardCoordinator(
		func() bool { return active },
		func() float64 { return 800 },
		func() { changes++ },
	)

	k.OnFrameChange(500)
	if k.Offset() != 0 || changes != 0 {
		t.Error("frame changes while inactive should be ignored")
	}

	active = true
	k.OnFrameChange(500)
	if k.Offset() != 300 {
		t.Errorf("Offset() = %v, want 300", k.Offset())
	}
	k.OnFrameChange(500)
	if changes != 1 {
		t.Errorf("changes = %d, want 1 for an unchanged frame", changes)
	}

	k.OnFrameChange(900)
	if k.Offset() != 0 {
		t.Errorf("keyboard below the container should not cover it, got %v", k.Offset())
	}

	k.OnFrameChange(600)
	k.OnHide()
	if k.Offset() != 0 {
		t.Errorf("Offset() after hide = %v, want 0", k.Offset())
	}
	if changes != 4 {
		t.Errorf("changes = %d, want 4", changes)
	}
}
