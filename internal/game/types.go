package game

import "errors"

// The structs in this file are the persisted-state contract: their JSON
// shape is what the store writes and what clients read back. Field names
// must stay stable across releases.

type AssetType string

const (
	AssetStocks      AssetType = "stocks"
	AssetCrypto      AssetType = "crypto"
	AssetRealEstate  AssetType = "realEstate"
	AssetStartups    AssetType = "startups"
	AssetCommodities AssetType = "commodities"
	AssetBonds       AssetType = "bonds"
)

type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

type ActionType string

const (
	ActionInvest       ActionType = "invest"
	ActionNegotiate    ActionType = "negotiate"
	ActionInfluence    ActionType = "influence"
	ActionExpose       ActionType = "expose"
	ActionLegalShield  ActionType = "legalShield"
	ActionPhilanthropy ActionType = "philanthropy"
	ActionHire         ActionType = "hire"
	ActionFire         ActionType = "fire"
)

type EventType string

const (
	EventCrash      EventType = "crash"
	EventBoom       EventType = "boom"
	EventScandal    EventType = "scandal"
	EventRegulatory EventType = "regulatory"
	EventInnovation EventType = "innovation"
	EventMerger     EventType = "merger"
)

var (
	ErrUnknownAction  = errors.New("unknown action type")
	ErrActionReserved = errors.New("action type is reserved and not yet available")
	ErrMissingTarget  = errors.New("action requires a target")
	ErrNegativeAmount = errors.New("action amount must not be negative")
)

type GameState struct {
	Turn         int           `json:"turn"`
	Seed         string        `json:"seed"`
	Player       Player        `json:"player"`
	Rivals       []Rival       `json:"rivals"`
	Assets       []Asset       `json:"assets"`
	MarketEvents []MarketEvent `json:"marketEvents"`
	NewsItems    []NewsItem    `json:"newsItems"`
	Achievements []Achievement `json:"achievements"`
	Settings     Settings      `json:"gameSettings"`
}

type Settings struct {
	Difficulty       string  `json:"difficulty"`
	MarketVolatility float64 `json:"marketVolatility"`
	EnableNarrative  bool    `json:"enableNarrative"`
}

type Player struct {
	Name       string    `json:"name"`
	Level      int       `json:"level"`
	XP         int       `json:"xp"`
	Cash       float64   `json:"cash"`
	NetWorth   float64   `json:"netWorth"`
	Reputation float64   `json:"reputation"`
	Suspicion  float64   `json:"suspicion"`
	Leverage   float64   `json:"leverage"`
	Skills     Skills    `json:"skills"`
	Network    []string  `json:"network"`
	Holdings   []Holding `json:"holdings"`
}

type Skills struct {
	Algorithmics int `json:"algorithmics"`
	Negotiation  int `json:"negotiation"`
	Law          int `json:"law"`
	Operations   int `json:"operations"`
}

type Holding struct {
	AssetID       string    `json:"assetId"`
	AssetType     AssetType `json:"assetType"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	CurrentValue  float64   `json:"currentValue"`
}

type Rival struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Personality Personality `json:"personality"`
	Stats       RivalStats  `json:"stats"`
	Holdings    []Holding   `json:"holdings"`
	LastAction  string      `json:"lastAction,omitempty"`
}

// Personality traits are all in [0,1] and immutable after creation.
type Personality struct {
	Risk           float64 `json:"risk"`
	Reputation     float64 `json:"reputation"`
	Ethics         float64 `json:"ethics"`
	Aggression     float64 `json:"aggression"`
	ShortTermFocus float64 `json:"shortTermFocus"`
}

type RivalStats struct {
	Cash       float64 `json:"cash"`
	NetWorth   float64 `json:"netWorth"`
	Reputation float64 `json:"reputation"`
	Suspicion  float64 `json:"suspicion"`
}

type Asset struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Type              AssetType `json:"type"`
	CurrentPrice      float64   `json:"currentPrice"`
	PriceHistory      []float64 `json:"priceHistory"`
	Volatility        float64   `json:"volatility"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	MinimumInvestment float64   `json:"minimumInvestment"`
	Description       string    `json:"description"`
}

type MarketEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	// Turn records when the event was generated; the event takes effect
	// on the following turn and expires after Impact.Duration turns.
	Turn        int         `json:"turn"`
	Impact      EventImpact `json:"impact"`
	Probability float64     `json:"probability"`
}

type EventImpact struct {
	AssetTypes      []AssetType `json:"assetTypes"`
	PriceMultiplier float64     `json:"priceMultiplier"`
	Duration        int         `json:"duration"`
}

type NewsItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Category  string `json:"category"` // market | regulatory | technology | scandal | general
	Timestamp int64  `json:"timestamp"`
}

type Achievement struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Type        string               `json:"type"`
	Condition   AchievementCondition `json:"condition"`
	Reward      AchievementReward    `json:"reward"`
	Unlocked    bool                 `json:"unlocked"`
}

type AchievementCondition struct {
	Type       string  `json:"type"` // netWorth | reputation | suspicion | turns
	Value      float64 `json:"value"`
	Comparison string  `json:"comparison"` // greater | less | equal
}

type AchievementReward struct {
	XP      int      `json:"xp"`
	Unlocks []string `json:"unlocks"`
}

// Action is the ephemeral per-turn input; it is never persisted.
type Action struct {
	Type       ActionType     `json:"type"`
	Target     string         `json:"target,omitempty"`
	Amount     float64        `json:"amount,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

// ValidateAction rejects malformed actions before any state mutation.
// Domain preconditions (insufficient cash, bad target index) are not
// checked here; failing one of those makes the action a recorded no-op
// while the turn still advances.
func ValidateAction(a Action) error {
	switch a.Type {
	case ActionInvest, ActionNegotiate, ActionExpose:
		if a.Target == "" {
			return ErrMissingTarget
		}
	case ActionInfluence, ActionLegalShield, ActionPhilanthropy:
	case ActionHire, ActionFire:
		return ErrActionReserved
	default:
		return ErrUnknownAction
	}
	if a.Amount < 0 {
		return ErrNegativeAmount
	}
	return nil
}
