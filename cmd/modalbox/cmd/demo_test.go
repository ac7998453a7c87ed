package cmd

import (
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/modalbox/pkg/modal"
	drifttest "github.com/go-drift/modalbox/pkg/testing"
)

type demoHarness struct {
	clock *drifttest.FakeClock
	model *demoModel
}

func newDemoHarness(t *testing.T) *demoHarness {
	t.Helper()
	clock := drifttest.NewFakeClock()
	m, err := newDemoModel(linearConfig(), clock, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(m.Dispose)

	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	return &demoHarness{clock: clock, model: m}
}

func (h *demoHarness) key(k string) tea.Cmd {
	_, cmd := h.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

func (h *demoHarness) settle() {
	for range 20 {
		h.clock.Advance(16 * time.Millisecond)
		h.model.Update(frameMsg(h.clock.Now()))
	}
}

func (h *demoHarness) mouse(action tea.MouseAction, x, y int) {
	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft})
}

func TestDemoLayout(t *testing.T) {
	h := newDemoHarness(t)

	// 38 stage rows of 16 points, 80 columns of 8 points.
	assert.Equal(t, modal.Size{Width: 640, Height: 608}, h.model.stageSize())
	assert.Equal(t, modal.Size{Width: 384, Height: 192}, h.model.contentSize())
	assert.Equal(t, 128.0, h.model.modal.Frame().OffsetX)
}

func TestDemoOpenClose(t *testing.T) {
	h := newDemoHarness(t)

	h.key("o")
	h.settle()
	require.Equal(t, modal.StateOpen, h.model.modal.State())
	assert.Contains(t, h.model.View(), "modalbox")
	assert.Contains(t, h.model.View(), "opened")

	h.key("c")
	h.settle()
	assert.Equal(t, modal.StateClosed, h.model.modal.State())
	assert.NotContains(t, h.model.View(), "drag down to close")
}

func TestDemoKeys(t *testing.T) {
	h := newDemoHarness(t)
	h.key("o")
	h.settle()

	h.key("b")
	assert.Contains(t, h.model.events[len(h.model.events)-1], "back ignored")

	h.key("k")
	h.settle()
	assert.InDelta(t, 243.2, h.model.modal.Keyboard().Offset(), 1e-9)
	assert.Contains(t, h.model.View(), "keyboard")

	h.key("K")
	assert.Equal(t, 0.0, h.model.modal.Keyboard().Offset())

	h.key("d")
	assert.True(t, h.model.modal.Disabled())
	h.key("t")
	h.settle()
	assert.Equal(t, modal.StateOpen, h.model.modal.State())

	h.key("d")
	h.key("t")
	h.settle()
	assert.Equal(t, modal.StateClosed, h.model.modal.State())

	assert.NotNil(t, h.key("q"))
}

func TestDemoMouseSwipe(t *testing.T) {
	h := newDemoHarness(t)
	h.key("o")
	h.settle()

	top, left := h.model.boxOrigin(h.model.modal.Frame())
	require.True(t, h.model.hitsModal(left+2, top+1))

	h.mouse(tea.MouseActionPress, left+2, top+1)
	require.True(t, h.model.dragging)
	assert.Equal(t, modal.DriverGesture, h.model.modal.Driver())

	h.mouse(tea.MouseActionMotion, left+2, top+6)
	assert.True(t, h.model.closingIntent)
	assert.Contains(t, h.model.View(), "release to close")

	h.mouse(tea.MouseActionRelease, left+2, top+6)
	assert.False(t, h.model.dragging)
	assert.Equal(t, modal.StateClosing, h.model.modal.State())

	h.settle()
	assert.Equal(t, modal.StateClosed, h.model.modal.State())
}

func TestDemoBackdropPress(t *testing.T) {
	h := newDemoHarness(t)
	h.key("o")
	h.settle()

	h.mouse(tea.MouseActionPress, 0, 0)
	assert.False(t, h.model.dragging)
	assert.Equal(t, modal.StateClosing, h.model.modal.State())
}

func TestDemoPressWithoutReleaseEndsPreviousDrag(t *testing.T) {
	h := newDemoHarness(t)
	h.key("o")
	h.settle()
	resting := h.model.modal.RestingPosition()

	top, left := h.model.boxOrigin(h.model.modal.Frame())
	h.mouse(tea.MouseActionPress, left+2, top+1)
	h.mouse(tea.MouseActionMotion, left+2, top+3)
	require.True(t, h.model.dragging)

	// second press arrives without a release for the first drag
	h.mouse(tea.MouseActionPress, left+2, top+3)
	assert.True(t, h.model.dragging)
	assert.Equal(t, modal.DriverGesture, h.model.modal.Driver())

	h.mouse(tea.MouseActionRelease, left+2, top+3)
	h.settle()
	assert.Equal(t, modal.StateOpen, h.model.modal.State())
	assert.Equal(t, resting, h.model.modal.Frame().Position)
}
