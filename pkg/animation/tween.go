package animation

// Tween maps a progress value in [0, 1] onto the range From..To.
//
// The modal keeps its backdrop controller in [0, 1] and reads the rendered
// opacity through a float tween ending at the configured opacity.
type Tween[T any] struct {
	From, To T
	// Mix blends From and To at t. A nil Mix yields To.
	Mix func(from, to T, t float64) T
}

// Evaluate returns the tween at t. t is not clamped.
func (tw *Tween[T]) Evaluate(t float64) T {
	if tw.Mix == nil {
		return tw.To
	}
	return tw.Mix(tw.From, tw.To, t)
}

// Transform returns the tween at the controller's value, clamped to [0, 1]
// so overshooting curves such as Elastic stay within From..To.
func (tw *Tween[T]) Transform(c *AnimationController) T {
	return tw.Evaluate(clampUnit(c.Value))
}

// LerpFloat64 blends two floats linearly.
func LerpFloat64(from, to, t float64) float64 {
	return from + (to-from)*t
}

// TweenFloat64 returns a linear float tween from from to to.
func TweenFloat64(from, to float64) *Tween[float64] {
	return &Tween[float64]{From: from, To: to, Mix: LerpFloat64}
}
