package game

// DefaultAchievements returns the unlockables a new game starts with.
func DefaultAchievements() []Achievement {
	return []Achievement{
		{
			ID:          "first_million",
			Name:        "First Million",
			Description: "Reach $1M net worth",
			Type:        "wealth",
			Condition:   AchievementCondition{Type: "netWorth", Value: 1000000, Comparison: "greater"},
			Reward:      AchievementReward{XP: 500, Unlocks: []string{}},
		},
		{
			ID:          "market_survivor",
			Name:        "Market Survivor",
			Description: "Avoid regulator for 20 turns",
			Type:        "survival",
			Condition:   AchievementCondition{Type: "turns", Value: 20, Comparison: "greater"},
			Reward:      AchievementReward{XP: 1000, Unlocks: []string{"elite_difficulty"}},
		},
		{
			ID:          "ghost",
			Name:        "Ghost",
			Description: "Keep suspicion below 10 all game",
			Type:        "strategic",
			Condition:   AchievementCondition{Type: "suspicion", Value: 10, Comparison: "less"},
			Reward:      AchievementReward{XP: 1500, Unlocks: []string{"stealth_mode"}},
		},
		{
			ID:          "respected",
			Name:        "Respected",
			Description: "Reach 90+ reputation",
			Type:        "reputation",
			Condition:   AchievementCondition{Type: "reputation", Value: 90, Comparison: "greater"},
			Reward:      AchievementReward{XP: 800, Unlocks: []string{"reputation_boost"}},
		},
	}
}

// evaluateAchievements flips newly satisfied achievements to unlocked and
// grants their xp immediately, before leveling is computed. The unlocked
// flag is a one-way latch. Returns the ids unlocked this turn.
func evaluateAchievements(state *GameState) []string {
	var unlocked []string
	for i := range state.Achievements {
		ach := &state.Achievements[i]
		if ach.Unlocked {
			continue
		}
		var value float64
		switch ach.Condition.Type {
		case "netWorth":
			value = state.Player.NetWorth
		case "reputation":
			value = state.Player.Reputation
		case "suspicion":
			value = state.Player.Suspicion
		case "turns":
			value = float64(state.Turn)
		default:
			continue
		}
		if conditionMet(value, ach.Condition) {
			ach.Unlocked = true
			state.Player.XP += ach.Reward.XP
			unlocked = append(unlocked, ach.ID)
		}
	}
	return unlocked
}

func conditionMet(value float64, c AchievementCondition) bool {
	switch c.Comparison {
	case "greater":
		return value > c.Value
	case "less":
		return value < c.Value
	case "equal":
		return value == c.Value
	default:
		return false
	}
}
