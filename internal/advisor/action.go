package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

const decideSystemPrompt = "You are an AI player in an economic simulation game. Always respond with valid JSON."

type actionReply struct {
	Type      string  `json:"type"`
	Target    string  `json:"target"`
	Amount    float64 `json:"amount"`
	Reasoning string  `json:"reasoning"`
}

// DecideAction asks the model to choose one action for a rival, in
// character. The caller validates the result and falls back on error.
func (c *Client) DecideAction(ctx context.Context, rival game.Rival, summary game.TurnSummary) (game.Action, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, an AI rival in a strategic economic simulation game.\n\n", rival.Name)
	fmt.Fprintf(&b, "Your personality traits (0-1 scale):\n")
	fmt.Fprintf(&b, "- Risk tolerance: %g\n", rival.Personality.Risk)
	fmt.Fprintf(&b, "- Reputation focus: %g\n", rival.Personality.Reputation)
	fmt.Fprintf(&b, "- Ethics: %g\n", rival.Personality.Ethics)
	fmt.Fprintf(&b, "- Aggression: %g\n", rival.Personality.Aggression)
	fmt.Fprintf(&b, "- Short-term focus: %g\n\n", rival.Personality.ShortTermFocus)
	fmt.Fprintf(&b, "Your current stats:\n")
	fmt.Fprintf(&b, "- Cash: $%.0f\n", rival.Stats.Cash)
	fmt.Fprintf(&b, "- Net Worth: $%.0f\n", rival.Stats.NetWorth)
	fmt.Fprintf(&b, "- Reputation: %g\n", rival.Stats.Reputation)
	fmt.Fprintf(&b, "- Suspicion: %g\n\n", rival.Stats.Suspicion)
	fmt.Fprintf(&b, "Current turn: %d\n", summary.Turn)
	fmt.Fprintf(&b, "Market volatility: %g\n\n", summary.MarketVolatility)
	b.WriteString(`Available actions:
1. invest - Choose an asset and amount to invest
2. negotiate - Try to make a deal with another player
3. influence - Spend money to gain reputation and suspicion
4. legalShield - Spend money to reduce suspicion
5. philanthropy - Spend money to gain reputation
6. expose - Try to damage another rival's reputation

Based on your personality and current situation, choose ONE action. Consider:
- Your risk tolerance when investing
- Your ethics when choosing aggressive actions
- Your reputation focus when making decisions
- Market conditions and opportunities

Respond with a JSON object containing:
{
  "type": "action_type",
  "target": "target_id_if_applicable",
  "amount": number_if_applicable,
  "reasoning": "brief explanation of your choice"
}`)

	var reply actionReply
	if err := c.completeJSON(ctx, decideSystemPrompt, b.String(), &reply); err != nil {
		return game.Action{}, err
	}

	if reply.Type == "" {
		reply.Type = string(game.ActionInvest)
	}
	action := game.Action{
		Type:   game.ActionType(reply.Type),
		Target: reply.Target,
		Amount: reply.Amount,
	}
	if reply.Reasoning != "" {
		action.Parameters = map[string]any{"reasoning": reply.Reasoning}
	}
	return action, nil
}
