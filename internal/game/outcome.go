package game

// Outcome is one of the five discrete tiers every stat-affecting action
// resolves to.
type Outcome string

const (
	GreatSuccess Outcome = "great_success"
	Success      Outcome = "success"
	Neutral      Outcome = "neutral"
	Failure      Outcome = "failure"
	Catastrophic Outcome = "catastrophic"
)

// resolveOutcome maps a success probability and a single uniform roll to an
// outcome tier. The breakpoints are monotonic in p: higher p widens the
// favorable bands, but the catastrophic tail never fully closes: its mass
// is bounded below by 0.2*(1-p).
func resolveOutcome(p, roll float64) Outcome {
	switch {
	case roll < p*0.1:
		return GreatSuccess
	case roll < p*0.6:
		return Success
	case roll < p+(1-p)*0.3:
		return Neutral
	case roll < p+(1-p)*0.8:
		return Failure
	default:
		return Catastrophic
	}
}
