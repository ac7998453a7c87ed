package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-drift/modalbox/cmd/modalbox/internal/config"
	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/modal"
	"github.com/go-drift/modalbox/pkg/platform"
	drifttest "github.com/go-drift/modalbox/pkg/testing"
)

var defaultScript = []string{
	"open", "wait:600ms",
	"keyboard:500", "wait:600ms", "keyboard-hide", "wait:600ms",
	"swipe:20", "wait:600ms",
	"swipe:120", "wait:600ms",
}

var simulateSteps []string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a scripted scenario without a terminal UI",
	Long: `Run a scripted scenario against a simulated clock and print every
lifecycle event with the simulated time it happened at.

Steps:
  open, close, back, tap, host-close, disable, enable
  keyboard:Y      show the keyboard with its top edge at Y points
  keyboard-hide   hide the keyboard
  swipe:DY        drag DY points from the modal's top edge and release
  resize:H        change the container height to H points
  wait:DURATION   advance the clock, e.g. wait:400ms`,
	Example: `  modalbox simulate
  modalbox simulate --steps open,wait:500ms,tap,wait:500ms
  modalbox simulate --anchor bottom --steps open,wait:1s,swipe:30,wait:1s`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringSliceVar(&simulateSteps, "steps", defaultScript, "Comma-separated scenario steps")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	steps, err := parseScript(simulateSteps)
	if err != nil {
		return err
	}
	f, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	sim, err := newSimulation(f, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer sim.Dispose()

	sim.Run(steps)
	return nil
}

type scriptStep struct {
	action string
	amount float64
	wait   time.Duration
}

func (s scriptStep) String() string {
	switch s.action {
	case "wait":
		return "wait " + s.wait.String()
	case "keyboard", "swipe", "resize":
		return fmt.Sprintf("%s %g", s.action, s.amount)
	}
	return s.action
}

var plainActions = map[string]bool{
	"open":          true,
	"close":         true,
	"back":          true,
	"tap":           true,
	"host-close":    true,
	"disable":       true,
	"enable":        true,
	"keyboard-hide": true,
}

// parseScript parses steps such as "open", "swipe:120" and "wait:400ms".
func parseScript(raw []string) ([]scriptStep, error) {
	steps := make([]scriptStep, 0, len(raw))
	for i, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		action, arg, hasArg := strings.Cut(entry, ":")
		step := scriptStep{action: action}

		switch {
		case plainActions[action] && !hasArg:
		case action == "wait" && hasArg:
			d, err := time.ParseDuration(arg)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("step %d: invalid duration %q", i+1, arg)
			}
			step.wait = d
		case (action == "keyboard" || action == "swipe" || action == "resize") && hasArg:
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("step %d: invalid number %q", i+1, arg)
			}
			if action == "resize" && v <= 0 {
				return nil, fmt.Errorf("step %d: container height must be positive, got %g", i+1, v)
			}
			step.amount = v
		default:
			return nil, fmt.Errorf("step %d: unknown step %q", i+1, entry)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// simulation drives a modal with a fake clock at a fixed frame rate.
type simulation struct {
	clock     *drifttest.FakeClock
	sched     *animation.Scheduler
	modal     *modal.Modal
	keyboard  *platform.KeyboardService
	back      *platform.BackButtonService
	host      *platform.PresentationService
	frame     time.Duration
	container modal.Size
	start     time.Time
	out       io.Writer
}

// swipeMoves is the number of move events a scripted swipe is split into.
const swipeMoves = 8

func newSimulation(f *config.File, out io.Writer) (*simulation, error) {
	opts, err := f.Options()
	if err != nil {
		return nil, err
	}
	fps := f.Demo.FPS
	if fps <= 0 {
		fps = config.Default().Demo.FPS
	}

	clock := drifttest.NewFakeClock()
	s := &simulation{
		clock:     clock,
		sched:     animation.NewScheduler(clock),
		keyboard:  platform.NewKeyboardService(),
		back:      platform.NewBackButtonService(),
		host:      platform.NewPresentationService(),
		frame:     time.Second / time.Duration(fps),
		container: opts.ScreenSize,
		start:     clock.Now(),
		out:       out,
	}

	opts.Keyboard = s.keyboard
	opts.BackButton = s.back
	opts.Host = s.host
	opts.OnOpened = func() { s.event("opened") }
	opts.OnClosed = func() { s.event("closed") }
	opts.OnClosingState = func(closing bool) { s.event("closing intent %t", closing) }
	opts.OnVisibilityChanged = func(visible bool) { s.event("visible %t", visible) }
	opts.OnLayout = func(c modal.Size) { s.event("layout %gx%g", c.Width, c.Height) }

	s.modal, err = modal.New(s.sched, opts)
	if err != nil {
		return nil, err
	}
	s.modal.OnContentMeasured(modal.Size{
		Width:  float64(f.Demo.ContentColumns) * pointsPerCol,
		Height: float64(f.Demo.ContentRows) * pointsPerRow,
	})
	s.modal.OnContainerMeasured(s.container)
	return s, nil
}

// Run executes steps in order, printing the modal's state after each.
func (s *simulation) Run(steps []scriptStep) {
	for _, step := range steps {
		s.apply(step)
		frame := s.modal.Frame()
		s.printf("%-16s state=%s y=%.1f backdrop=%.2f", step, s.modal.State(), frame.Position, frame.Backdrop)
	}
}

func (s *simulation) apply(step scriptStep) {
	switch step.action {
	case "open":
		s.modal.Open()
	case "close":
		s.modal.Close()
	case "back":
		if !s.back.Dispatch() {
			s.event("back ignored")
		}
	case "tap":
		s.modal.TapBackdrop()
	case "host-close":
		if !s.host.RequestClose() {
			s.event("host close ignored")
		}
	case "disable":
		s.modal.SetDisabled(true)
	case "enable":
		s.modal.SetDisabled(false)
	case "keyboard":
		s.keyboard.Show(step.amount)
	case "keyboard-hide":
		s.keyboard.Hide()
	case "swipe":
		s.swipe(step.amount)
	case "resize":
		s.container.Height = step.amount
		s.modal.OnContainerMeasured(s.container)
	case "wait":
		drifttest.PumpFor(s.sched, s.clock, s.frame, step.wait)
	}
}

func (s *simulation) swipe(dy float64) {
	g := s.modal.Gesture()
	if !g.ShouldCapture(modal.PanStart{Y: s.modal.RestingPosition() + 1}) {
		s.event("swipe rejected")
		return
	}
	for i := 1; i <= swipeMoves; i++ {
		g.OnMove(dy * float64(i) / swipeMoves)
		drifttest.Pump(s.sched, s.clock, s.frame)
	}
	g.OnRelease(dy)
}

// Dispose releases the modal and the platform services.
func (s *simulation) Dispose() {
	s.modal.Dispose()
	s.keyboard.Close()
}

func (s *simulation) event(format string, args ...any) {
	s.printf("event "+format, args...)
}

func (s *simulation) printf(format string, args ...any) {
	elapsed := s.clock.Now().Sub(s.start)
	fmt.Fprintf(s.out, "%8s  %s\n", elapsed, fmt.Sprintf(format, args...))
}
