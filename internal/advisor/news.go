package advisor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
)

type newsReply struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

// WriteNews generates one news story for the given prompt kind. Story ids
// are random; news is flavor, not replayable simulation state.
func (c *Client) WriteNews(ctx context.Context, prompt game.NewsPrompt) (game.NewsItem, error) {
	system, user := newsPrompts(prompt)

	var reply newsReply
	if err := c.completeJSON(ctx, system, user, &reply); err != nil {
		return game.NewsItem{}, err
	}
	if reply.Title == "" || reply.Content == "" {
		return game.NewsItem{}, fmt.Errorf("incomplete story for kind %q", prompt.Kind)
	}
	if reply.Category == "" {
		reply.Category = "general"
	}

	return game.NewsItem{
		ID:        fmt.Sprintf("news_%s", uuid.NewString()),
		Title:     reply.Title,
		Content:   reply.Content,
		Category:  reply.Category,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

func newsPrompts(p game.NewsPrompt) (system, user string) {
	var b strings.Builder
	switch p.Kind {
	case "player":
		system = "You are a financial news writer. Write realistic but fictional news stories."
		fmt.Fprintf(&b, "Generate a financial news headline and brief article about player %q performing action %q in a strategic economic simulation game.\n\n", p.PlayerName, p.ActionType)
		fmt.Fprintf(&b, "Context:\n")
		fmt.Fprintf(&b, "- Current turn: %d\n", p.Turn)
		fmt.Fprintf(&b, "- Player reputation: %g\n", p.Reputation)
		fmt.Fprintf(&b, "- Player suspicion level: %g\n\n", p.Suspicion)
		b.WriteString("Write a realistic-sounding financial news story. Make it sound like real financial journalism but keep it brief (2-3 sentences).\n\n")
		b.WriteString(`Respond with JSON:
{
  "title": "News headline",
  "content": "Brief news content",
  "category": "market|regulatory|technology|scandal|general"
}`)

	case "market":
		system = "You are a financial market reporter writing about asset price movements."
		fmt.Fprintf(&b, "Generate a financial market news story about %s (%s) which had a %.1f%% price change.\n\n", p.AssetName, p.AssetType, p.PriceChangePct)
		fmt.Fprintf(&b, "Current price: $%.2f\n", p.Price)
		fmt.Fprintf(&b, "Asset type: %s\n", p.AssetType)
		fmt.Fprintf(&b, "Risk level: %s\n\n", p.RiskLevel)
		b.WriteString("Write a brief, realistic financial news story explaining the price movement.\n\n")
		b.WriteString(`Respond with JSON:
{
  "title": "News headline",
  "content": "Brief news content (2-3 sentences)",
  "category": "market"
}`)

	default: // rival
		system = "You are a business journalist covering financial market participants."
		fmt.Fprintf(&b, "Generate a brief financial news story about AI rival %q performing action %q.\n\n", p.RivalName, p.ActionType)
		fmt.Fprintf(&b, "Rival context:\n")
		fmt.Fprintf(&b, "- Current reputation: %g\n", p.RivalReputation)
		fmt.Fprintf(&b, "- Current suspicion: %g\n", p.RivalSuspicion)
		fmt.Fprintf(&b, "- Net worth: $%.0f\n\n", p.RivalNetWorth)
		b.WriteString("Write a short, realistic news story about this rival's business activities.\n\n")
		b.WriteString(`Respond with JSON:
{
  "title": "News headline",
  "content": "Brief news content (1-2 sentences)",
  "category": "market|regulatory|general"
}`)
	}
	return system, b.String()
}
