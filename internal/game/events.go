package game

import (
	"fmt"
	"time"
)

var allAssetTypes = [6]AssetType{
	AssetStocks, AssetCrypto, AssetRealEstate, AssetStartups, AssetCommodities, AssetBonds,
}

var eventTypes = [6]EventType{
	EventCrash, EventBoom, EventScandal, EventRegulatory, EventInnovation, EventMerger,
}

// generateEvents produces this turn's market events: a 15% chance of one
// random event, plus a fixed low-impact regulatory review every 10th turn.
func generateEvents(state *GameState, rng *Stream) []MarketEvent {
	var events []MarketEvent
	if rng.Next() < 0.15 {
		events = append(events, randomEvent(state.Turn, rng))
	}
	if state.Turn%10 == 0 {
		events = append(events, regulatoryReview(state.Turn, rng))
	}
	return events
}

func randomEvent(turn int, rng *Stream) MarketEvent {
	typ := eventTypes[int(rng.Next()*float64(len(eventTypes)))%len(eventTypes)]

	// Each asset class has an independent ~40% chance of being hit; an
	// event can legitimately end up affecting nothing.
	var affected []AssetType
	for _, at := range allAssetTypes {
		if rng.Next() < 0.4 {
			affected = append(affected, at)
		}
	}

	var multiplier float64
	var title, description string
	switch typ {
	case EventCrash:
		multiplier = rng.between(0.7, 0.9)
		title = "Market Crash Shakes Investor Confidence"
		description = "Major market indices plummet amid economic uncertainty"
	case EventBoom:
		multiplier = rng.between(1.2, 1.5)
		title = "Economic Boom Drives Markets Higher"
		description = "Strong economic data fuels massive rally across markets"
	case EventScandal:
		multiplier = rng.between(0.8, 0.95)
		title = "Corporate Scandal Rocks Industry"
		description = "Major company faces investigation over questionable practices"
	case EventRegulatory:
		multiplier = rng.between(0.85, 1.05)
		title = "New Regulations Announced"
		description = "Government introduces new financial oversight measures"
	case EventInnovation:
		multiplier = rng.between(1.1, 1.35)
		title = "Breakthrough Technology Disrupts Market"
		description = "Revolutionary innovation promises to transform industry"
	case EventMerger:
		multiplier = rng.between(1.05, 1.25)
		title = "Major Merger Announced"
		description = "Industry giants announce massive consolidation deal"
	}

	return MarketEvent{
		ID:          eventID("event", turn, rng),
		Type:        typ,
		Title:       title,
		Description: description,
		Turn:        turn,
		Impact: EventImpact{
			AssetTypes:      affected,
			PriceMultiplier: multiplier,
			Duration:        int(rng.Next()*3) + 1,
		},
		Probability: rng.Next(),
	}
}

func regulatoryReview(turn int, rng *Stream) MarketEvent {
	return MarketEvent{
		ID:          eventID("regular", turn, rng),
		Type:        EventRegulatory,
		Title:       "Quarterly Market Review",
		Description: "Regulators conduct routine market oversight",
		Turn:        turn,
		Impact: EventImpact{
			AssetTypes:      []AssetType{AssetStocks},
			PriceMultiplier: rng.between(0.98, 1.02),
			Duration:        1,
		},
		Probability: 1.0,
	}
}

// eventID derives ids from the turn stream rather than a UUID so a
// replayed turn reproduces them.
func eventID(prefix string, turn int, rng *Stream) string {
	return fmt.Sprintf("%s_%d_%06x", prefix, turn, int(rng.Next()*0x1000000))
}

var cannedNews = [3]NewsItem{
	{
		Title:    "Market Volatility Continues",
		Content:  "Financial markets experience continued uncertainty as investors weigh economic indicators.",
		Category: "market",
	},
	{
		Title:    "Tech Sector Shows Mixed Results",
		Content:  "Technology companies report varied performance amid changing market conditions.",
		Category: "market",
	},
	{
		Title:    "Regulatory Review Underway",
		Content:  "Financial authorities announce routine review of market practices and compliance.",
		Category: "regulatory",
	},
}

// fallbackNews picks one canned story. Used whenever the narrative advisor
// is disabled or fails; the turn never depends on advisor availability.
func fallbackNews(turn int, rng *Stream) NewsItem {
	item := cannedNews[int(rng.Next()*float64(len(cannedNews)))%len(cannedNews)]
	item.ID = eventID("fallback", turn, rng)
	item.Timestamp = time.Now().UnixMilli()
	return item
}
