package game

import (
	"math"
	"strconv"
)

// ActionResult records how a single action resolved. A rejected action is a
// no-op against state, but the rejection reason is kept so callers and
// tests can see why instead of relying on log output.
type ActionResult struct {
	Action  Action  `json:"action"`
	Applied bool    `json:"applied"`
	Reason  string  `json:"reason,omitempty"`
	Outcome Outcome `json:"outcome,omitempty"`
}

func rejected(a Action, reason string) ActionResult {
	return ActionResult{Action: a, Reason: reason}
}

func applied(a Action, out Outcome) ActionResult {
	return ActionResult{Action: a, Applied: true, Outcome: out}
}

// resolvePlayerAction dispatches one already-validated player action.
func resolvePlayerAction(state *GameState, a Action, rng *Stream) ActionResult {
	switch a.Type {
	case ActionInvest:
		return resolveInvest(state, a, rng)
	case ActionNegotiate:
		return resolveNegotiate(state, a, rng)
	case ActionInfluence:
		return resolveInfluence(state, a, rng)
	case ActionLegalShield:
		return resolveLegalShield(state, a)
	case ActionPhilanthropy:
		return resolvePhilanthropy(state, a)
	case ActionExpose:
		return resolveExpose(state, a, rng)
	default:
		return rejected(a, "unknown action")
	}
}

func resolveInvest(state *GameState, a Action, rng *Stream) ActionResult {
	p := &state.Player
	asset := findAsset(state.Assets, a.Target)
	if asset == nil {
		return rejected(a, "unknown asset")
	}
	if a.Amount <= 0 {
		return rejected(a, "amount must be positive")
	}
	if a.Amount > p.Cash {
		return rejected(a, "insufficient cash")
	}

	prob := investSuccessProbability(p, asset)
	out := resolveOutcome(prob, rng.Next())

	var multiplier float64
	var repDelta, suspDelta float64
	var xp int
	switch out {
	case GreatSuccess:
		multiplier = rng.between(1.5, 2.0)
		repDelta, xp = 3, 200
	case Success:
		multiplier = rng.between(1.1, 1.4)
		repDelta, xp = 1, 150
	case Neutral:
		multiplier = rng.between(0.95, 1.05)
		xp = 50
	case Failure:
		multiplier = rng.between(0.7, 0.9)
		repDelta, xp = -1, 25
	case Catastrophic:
		multiplier = rng.between(0.3, 0.6)
		repDelta, suspDelta, xp = -3, 2, 10
	}

	shares := a.Amount / asset.CurrentPrice
	p.Holdings = append(p.Holdings, Holding{
		AssetID:       asset.ID,
		AssetType:     asset.Type,
		Quantity:      shares,
		PurchasePrice: asset.CurrentPrice,
		CurrentValue:  asset.CurrentPrice * shares * multiplier,
	})
	p.Cash -= a.Amount
	p.Reputation = clampPercent(p.Reputation + repDelta)
	p.Suspicion = clampPercent(p.Suspicion + suspDelta)
	p.XP += xp
	return applied(a, out)
}

func resolveNegotiate(state *GameState, a Action, rng *Stream) ActionResult {
	p := &state.Player
	rival := rivalByIndex(state.Rivals, a.Target)
	if rival == nil {
		return rejected(a, "unknown rival")
	}

	prob := negotiationSuccessProbability(p, rival)
	out := resolveOutcome(prob, rng.Next())

	var cashGain, repDelta, suspDelta float64
	var xp int
	switch out {
	case GreatSuccess:
		cashGain = p.Cash * 0.1
		repDelta, xp = 5, 300
	case Success:
		cashGain = p.Cash * 0.05
		repDelta, xp = 2, 200
	case Neutral:
		repDelta, xp = 1, 100
	case Failure:
		repDelta, suspDelta, xp = -2, 1, 50
	case Catastrophic:
		repDelta, suspDelta, xp = -5, 3, 25
	}

	p.Cash += cashGain
	p.Reputation = clampPercent(p.Reputation + repDelta)
	p.Suspicion = clampPercent(p.Suspicion + suspDelta)
	p.XP += xp
	return applied(a, out)
}

func resolveInfluence(state *GameState, a Action, rng *Stream) ActionResult {
	p := &state.Player
	if a.Amount <= 0 {
		return rejected(a, "amount must be positive")
	}
	if a.Amount > p.Cash {
		return rejected(a, "insufficient cash")
	}

	prob := 0.6 + float64(p.Skills.Negotiation)*0.05
	out := resolveOutcome(prob, rng.Next())

	var repDelta, suspDelta float64
	var xp int
	switch out {
	case GreatSuccess:
		repDelta, suspDelta, xp = 8, 1, 250
	case Success:
		repDelta, suspDelta, xp = 4, 2, 150
	case Neutral:
		repDelta, suspDelta, xp = 2, 3, 75
	case Failure:
		repDelta, suspDelta, xp = -1, 5, 25
	case Catastrophic:
		repDelta, suspDelta, xp = -5, 10, 10
	}

	// The money is spent whatever the outcome.
	p.Cash -= a.Amount
	p.Reputation = clampPercent(p.Reputation + repDelta)
	p.Suspicion = clampPercent(p.Suspicion + suspDelta)
	p.XP += xp
	return applied(a, out)
}

// $10k of legal fees buys one point of suspicion off. Deterministic.
func resolveLegalShield(state *GameState, a Action) ActionResult {
	p := &state.Player
	if a.Amount <= 0 {
		return rejected(a, "amount must be positive")
	}
	if a.Amount > p.Cash {
		return rejected(a, "insufficient cash")
	}

	reduction := math.Min(p.Suspicion, a.Amount/10000)
	p.Cash -= a.Amount
	p.Suspicion = math.Max(0, p.Suspicion-reduction)
	p.XP += 50
	return applied(a, Neutral)
}

// $50k of giving buys one point of reputation, capped at 10 per action.
// Deterministic.
func resolvePhilanthropy(state *GameState, a Action) ActionResult {
	p := &state.Player
	if a.Amount <= 0 {
		return rejected(a, "amount must be positive")
	}
	if a.Amount > p.Cash {
		return rejected(a, "insufficient cash")
	}

	gain := math.Min(10, a.Amount/50000)
	p.Cash -= a.Amount
	p.Reputation = math.Min(100, p.Reputation+gain)
	p.XP += 100
	return applied(a, Neutral)
}

func resolveExpose(state *GameState, a Action, rng *Stream) ActionResult {
	p := &state.Player
	rival := rivalByIndex(state.Rivals, a.Target)
	if rival == nil {
		return rejected(a, "unknown rival")
	}

	prob := 0.4 + float64(p.Skills.Law)*0.06
	out := resolveOutcome(prob, rng.Next())

	var rivalRepDelta, repDelta, suspDelta float64
	var xp int
	switch out {
	case GreatSuccess:
		rivalRepDelta, repDelta, suspDelta, xp = -15, 5, 2, 300
	case Success:
		rivalRepDelta, repDelta, suspDelta, xp = -8, 2, 3, 200
	case Neutral:
		rivalRepDelta, suspDelta, xp = -3, 2, 100
	case Failure:
		repDelta, suspDelta, xp = -3, 5, 50
	case Catastrophic:
		repDelta, suspDelta, xp = -8, 10, 25
	}

	rival.Stats.Reputation = math.Max(0, rival.Stats.Reputation+rivalRepDelta)
	p.Reputation = clampPercent(p.Reputation + repDelta)
	p.Suspicion = clampPercent(p.Suspicion + suspDelta)
	p.XP += xp
	return applied(a, out)
}

func investSuccessProbability(p *Player, asset *Asset) float64 {
	prob := 0.6 + float64(p.Skills.Algorithmics)*0.02
	switch asset.RiskLevel {
	case RiskLow:
		prob += 0.2
	case RiskMedium:
		prob += 0.1
	case RiskHigh:
		prob -= 0.1
	case RiskExtreme:
		prob -= 0.2
	}
	return clampProbability(prob)
}

func negotiationSuccessProbability(p *Player, rival *Rival) float64 {
	prob := 0.5 + float64(p.Skills.Negotiation)*0.03
	prob += (p.Reputation - 50) * 0.002
	prob -= rival.Personality.Aggression * 0.1
	prob += rival.Personality.Ethics * 0.05
	return clampProbability(prob)
}

// rivalByIndex resolves an index-as-string target against the fixed rival
// order.
func rivalByIndex(rivals []Rival, target string) *Rival {
	idx, err := strconv.Atoi(target)
	if err != nil || idx < 0 || idx >= len(rivals) {
		return nil
	}
	return &rivals[idx]
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

func clampProbability(p float64) float64 {
	return math.Max(0.1, math.Min(0.9, p))
}
