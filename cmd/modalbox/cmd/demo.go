package cmd

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/modalbox/cmd/modalbox/internal/config"
	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/errors"
	"github.com/go-drift/modalbox/pkg/modal"
	"github.com/go-drift/modalbox/pkg/platform"
)

// The engine works in points; one terminal cell is pointsPerCol wide and
// pointsPerRow tall.
const (
	pointsPerRow = 16.0
	pointsPerCol = 8.0

	statusRows = 2
	maxEvents  = 4
)

var logFile string

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive terminal demo",
	Long: `Open and close a modal in the terminal. Drag the modal down with the
mouse to swipe it closed.

Keys:
  o  open            c  close
  b  back button     t  tap backdrop
  k  show keyboard   K  hide keyboard
  r  host close      d  toggle disabled
  q  quit`,
	RunE: runDemo,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, demoCmd} {
		c.Flags().StringVar(&logFile, "log-file", "", "Write engine debug logs to this file")
	}
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("demo needs a terminal, use %q for headless runs", "modalbox simulate")
	}
	f, err := loadOptions(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if logFile != "" {
		out, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer out.Close()
		logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	// stderr belongs to the terminal UI while it runs
	prev := errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
	defer errors.SetHandler(prev)

	model, err := newDemoModel(f, animation.SystemClock, logger)
	if err != nil {
		return err
	}
	defer model.Dispose()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running demo: %w", err)
	}
	return nil
}

type frameMsg time.Time

// demoModel hosts one modal in a bubbletea program. The platform services
// stand in for the keyboard, the hardware back button and the window that
// presents cover-screen modals.
type demoModel struct {
	sched    *animation.Scheduler
	clock    animation.Clock
	modal    *modal.Modal
	keyboard *platform.KeyboardService
	back     *platform.BackButtonService
	host     *platform.PresentationService
	demo     config.DemoConfig
	interval time.Duration
	started  time.Time

	width, height int
	dragging      bool
	dragStartY    int
	lastDragY     int
	closingIntent bool
	events        []string
}

func newDemoModel(f *config.File, clock animation.Clock, logger *slog.Logger) (*demoModel, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}

	fps := f.Demo.FPS
	if fps <= 0 {
		fps = config.Default().Demo.FPS
	}
	m := &demoModel{
		sched:    animation.NewScheduler(clock),
		clock:    clock,
		keyboard: platform.NewKeyboardService(),
		back:     platform.NewBackButtonService(),
		host:     platform.NewPresentationService(),
		demo:     f.Demo,
		interval: time.Second / time.Duration(fps),
		started:  clock.Now(),
		width:    80,
		height:   24,
	}

	opts.Keyboard = m.keyboard
	opts.BackButton = m.back
	opts.Host = m.host
	opts.Logger = logger
	opts.ScreenSize = m.stageSize()
	opts.OnOpened = func() { m.logEvent("opened") }
	opts.OnClosed = func() { m.logEvent("closed") }
	opts.OnClosingState = func(closing bool) {
		m.closingIntent = closing
		m.logEvent(fmt.Sprintf("closing intent %t", closing))
	}
	opts.OnVisibilityChanged = func(visible bool) { m.logEvent(fmt.Sprintf("visible %t", visible)) }
	opts.OnLayout = func(container modal.Size) {
		m.logEvent(fmt.Sprintf("layout %.0fx%.0f", container.Width, container.Height))
	}

	m.modal, err = modal.New(m.sched, opts)
	if err != nil {
		return nil, err
	}
	m.modal.OnContentMeasured(m.contentSize())
	return m, nil
}

// Dispose releases the modal and the platform services.
func (m *demoModel) Dispose() {
	m.modal.Dispose()
	m.keyboard.Close()
}

func (m *demoModel) Init() tea.Cmd {
	return m.tick()
}

func (m *demoModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.modal.OnContentMeasured(m.contentSize())
		m.modal.OnContainerMeasured(m.stageSize())
		return m, nil

	case frameMsg:
		m.step()
		return m, m.tick()

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// step advances every running transition by one frame. A panicking
// listener is reported and the program keeps running.
func (m *demoModel) step() {
	defer errors.Recover("demo.frame")
	m.sched.Step()
}

func (m *demoModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "o":
		m.modal.Open()
	case "c":
		m.modal.Close()
	case "b":
		if !m.back.Dispatch() {
			m.logEvent("back ignored")
		}
	case "t":
		m.modal.TapBackdrop()
	case "r":
		if !m.host.RequestClose() {
			m.logEvent("host close ignored")
		}
	case "k":
		m.keyboard.Show(m.stageSize().Height * 0.6)
	case "K":
		m.keyboard.Hide()
	case "d":
		m.modal.SetDisabled(!m.modal.Disabled())
		m.logEvent(fmt.Sprintf("disabled %t", m.modal.Disabled()))
	}
	return nil
}

func (m *demoModel) handleMouse(msg tea.MouseMsg) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if m.dragging {
			// the terminal dropped the release of the previous drag
			m.dragging = false
			m.modal.Gesture().OnRelease(m.dragDelta(m.lastDragY))
		}
		if !m.hitsModal(msg.X, msg.Y) {
			if m.modal.Visible() {
				m.modal.TapBackdrop()
			}
			return
		}
		start := modal.PanStart{X: float64(msg.X) * pointsPerCol, Y: float64(msg.Y) * pointsPerRow}
		if m.modal.Gesture().ShouldCapture(start) {
			m.dragging = true
			m.dragStartY = msg.Y
			m.lastDragY = msg.Y
		}

	case tea.MouseActionMotion:
		if m.dragging {
			m.lastDragY = msg.Y
			m.modal.Gesture().OnMove(m.dragDelta(msg.Y))
		}

	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.modal.Gesture().OnRelease(m.dragDelta(msg.Y))
		}
	}
}

func (m *demoModel) dragDelta(y int) float64 {
	return float64(y-m.dragStartY) * pointsPerRow
}

func (m *demoModel) hitsModal(x, y int) bool {
	if !m.modal.Visible() {
		return false
	}
	top, left := m.boxOrigin(m.modal.Frame())
	rows, cols := m.boxSize()
	return y >= top && y < top+rows && x >= left && x < left+cols
}

func (m *demoModel) logEvent(event string) {
	elapsed := m.clock.Now().Sub(m.started).Truncate(time.Millisecond)
	m.events = append(m.events, fmt.Sprintf("%8s  %s", elapsed, event))
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
}

func (m *demoModel) stageRows() int {
	return max(m.height-statusRows, 1)
}

func (m *demoModel) stageSize() modal.Size {
	return modal.Size{
		Width:  float64(m.width) * pointsPerCol,
		Height: float64(m.stageRows()) * pointsPerRow,
	}
}

// boxSize is the content size in cells, shrunk to fit the stage.
func (m *demoModel) boxSize() (rows, cols int) {
	rows = min(max(m.demo.ContentRows, 3), m.stageRows())
	cols = min(max(m.demo.ContentColumns, 4), m.width)
	return rows, cols
}

func (m *demoModel) contentSize() modal.Size {
	rows, cols := m.boxSize()
	return modal.Size{Width: float64(cols) * pointsPerCol, Height: float64(rows) * pointsPerRow}
}

func (m *demoModel) boxOrigin(f modal.Frame) (top, left int) {
	return int(math.Round(f.Position / pointsPerRow)), int(math.Round(f.OffsetX / pointsPerCol))
}

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

var (
	closingBoxStyle = boxStyle.BorderForeground(lipgloss.Color("203"))
	titleStyle      = lipgloss.NewStyle().Bold(true)
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	keyboardStyle   = lipgloss.NewStyle().Background(lipgloss.Color("238")).Foreground(lipgloss.Color("252"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111"))
)

var namedColors = map[string]string{
	"black": "0",
	"white": "15",
	"gray":  "8",
	"grey":  "8",
	"red":   "1",
	"blue":  "4",
}

func (m *demoModel) View() string {
	frame := m.modal.Frame()
	stage := m.stageRows()
	fill := m.backdropFill(frame.Backdrop)

	var box []string
	if m.modal.Visible() {
		box = strings.Split(m.renderBox(), "\n")
	}
	top, left := m.boxOrigin(frame)
	left = min(max(left, 0), m.width)

	kbRow := stage
	if visible, screenY := m.keyboard.State(); visible {
		kbRow = min(max(int(screenY/pointsPerRow), 0), stage)
	}

	lines := make([]string, 0, stage+statusRows)
	for row := range stage {
		if row >= kbRow {
			label := ""
			if row == kbRow {
				label = " keyboard"
			}
			lines = append(lines, keyboardStyle.Width(m.width).Render(label))
			continue
		}
		i := row - top
		if i < 0 || i >= len(box) {
			lines = append(lines, fill(m.width))
			continue
		}
		w := lipgloss.Width(box[i])
		lines = append(lines, fill(left)+box[i]+fill(max(m.width-left-w, 0)))
	}

	lines = append(lines, statusStyle.Render(fmt.Sprintf(
		"state=%s driver=%s y=%.0f backdrop=%.2f keyboard=%.0f",
		m.modal.State(), m.modal.Driver(), frame.Position, frame.Backdrop, m.modal.Keyboard().Offset(),
	)))
	lines = append(lines, dimStyle.Render("o open  c close  b back  t tap  k/K keyboard  r host  d disable  q quit"))
	return strings.Join(lines, "\n")
}

func (m *demoModel) renderBox() string {
	rows, cols := m.boxSize()
	body := []string{titleStyle.Render("modalbox")}
	if m.modal.Options().SwipeToClose {
		hint := "drag down to close"
		if m.closingIntent {
			hint = "release to close"
		}
		body = append(body, dimStyle.Render(hint))
	}
	body = append(body, "")
	body = append(body, m.events...)

	style := boxStyle
	if m.closingIntent && m.dragging {
		style = closingBoxStyle
	}
	// Width and Height exclude the border.
	return style.
		Width(max(cols-2, 1)).
		Height(max(rows-2, 1)).
		MaxHeight(rows).
		Render(strings.Join(body, "\n"))
}

func (m *demoModel) backdropFill(opacity float64) func(n int) string {
	if opacity <= 0 || !m.modal.Visible() {
		return func(n int) string { return strings.Repeat(" ", n) }
	}
	shade := "▓"
	switch {
	case opacity < 0.2:
		shade = "░"
	case opacity < 0.4:
		shade = "▒"
	}
	color := m.modal.Options().BackdropColor
	if c, ok := namedColors[strings.ToLower(color)]; ok {
		color = c
	}
	if color == "" || color == "0" {
		color = "237"
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	return func(n int) string {
		if n == 0 {
			return ""
		}
		return style.Render(strings.Repeat(shade, n))
	}
}
