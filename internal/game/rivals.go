package game

import "math"

// DefaultRivals returns the fixed antagonist roster. Identity is by index
// and id; personalities never change after creation.
func DefaultRivals() []Rival {
	return []Rival{
		{
			ID:   "victoria",
			Name: "Victoria Sterling",
			Personality: Personality{
				Risk: 0.2, Reputation: 0.9, Ethics: 0.8, Aggression: 0.3, ShortTermFocus: 0.2,
			},
			Stats:    RivalStats{Cash: 120000, NetWorth: 180000, Reputation: 85, Suspicion: 5},
			Holdings: []Holding{},
		},
		{
			ID:   "marcus",
			Name: "Marcus Kane",
			Personality: Personality{
				Risk: 0.9, Reputation: 0.3, Ethics: 0.2, Aggression: 0.8, ShortTermFocus: 0.9,
			},
			Stats:    RivalStats{Cash: 95000, NetWorth: 315000, Reputation: 45, Suspicion: 25},
			Holdings: []Holding{},
		},
		{
			ID:   "sofia",
			Name: "Sofia Chen",
			Personality: Personality{
				Risk: 0.7, Reputation: 0.6, Ethics: 0.7, Aggression: 0.5, ShortTermFocus: 0.3,
			},
			Stats:    RivalStats{Cash: 110000, NetWorth: 193000, Reputation: 72, Suspicion: 12},
			Holdings: []Holding{},
		},
		{
			ID:   "david",
			Name: "David Pierce",
			Personality: Personality{
				Risk: 0.4, Reputation: 0.8, Ethics: 0.9, Aggression: 0.2, ShortTermFocus: 0.1,
			},
			Stats:    RivalStats{Cash: 105000, NetWorth: 168000, Reputation: 91, Suspicion: 3},
			Holdings: []Holding{},
		},
	}
}

// fallbackActionTypes and the weight table below define the local policy a
// rival falls back to when the advisor is unavailable. Selection is a
// single roulette-wheel draw over cumulative weights.
var fallbackActionTypes = [5]ActionType{
	ActionInvest,
	ActionNegotiate,
	ActionInfluence,
	ActionLegalShield,
	ActionPhilanthropy,
}

func fallbackRivalAction(r *Rival, rng *Stream) Action {
	suspicionWeight := 0.5
	if r.Stats.Suspicion > 20 {
		suspicionWeight = 2
	}
	weights := [5]float64{
		r.Personality.Risk * 2,
		r.Personality.Aggression,
		r.Personality.Reputation,
		suspicionWeight,
		r.Personality.Ethics,
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := rng.Next() * total
	selected := len(weights) - 1
	for i, w := range weights {
		roll -= w
		if roll <= 0 {
			selected = i
			break
		}
	}

	action := Action{Type: fallbackActionTypes[selected]}
	switch action.Type {
	case ActionInvest:
		action.Amount = math.Min(r.Stats.Cash*0.1, r.Stats.Cash*r.Personality.Risk)
		action.Target = "TECH001"
	case ActionInfluence:
		action.Amount = math.Min(r.Stats.Cash*0.05, 50000)
	case ActionLegalShield:
		action.Amount = math.Min(r.Stats.Cash*0.03, 25000)
	case ActionPhilanthropy:
		action.Amount = math.Min(r.Stats.Cash*0.02, 20000)
	case ActionNegotiate:
		action.Target = "0"
	}
	return action
}

// applyRivalAction mutates a rival's stats with the simplified stochastic
// rule. Rivals do not go through the detailed outcome resolver.
func applyRivalAction(r *Rival, a Action, rng *Stream) {
	r.LastAction = string(a.Type)

	successRate := 0.5 + r.Personality.Risk*0.3
	if rng.Next() < successRate {
		r.Stats.Cash *= rng.between(1.02, 1.10)
		r.Stats.NetWorth = r.Stats.Cash * 1.5
	} else {
		r.Stats.Cash *= rng.between(0.95, 1.00)
		r.Stats.NetWorth = r.Stats.Cash * 1.3
	}
}
