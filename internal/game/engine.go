package game

import (
	"context"
	"log/slog"
	mathrand "math/rand"
	"strconv"
	"sync"
	"time"
)

const advisorCallTimeout = 10 * time.Second

// Advisor is the optional narrative collaborator: an external model that
// picks rival actions and writes news copy. Every call has a synchronous
// deterministic fallback, so a nil or failing advisor never blocks or
// fails a turn.
type Advisor interface {
	Enabled() bool
	DecideAction(ctx context.Context, rival Rival, summary TurnSummary) (Action, error)
	WriteNews(ctx context.Context, prompt NewsPrompt) (NewsItem, error)
}

// TurnSummary is the game context handed to the advisor when a rival picks
// an action.
type TurnSummary struct {
	Turn             int
	MarketVolatility float64
}

// NewsPrompt carries the context for one news story. Kind selects which of
// the fields below are meaningful.
type NewsPrompt struct {
	Kind string // player | market | rival
	Turn int

	PlayerName string
	ActionType string
	Reputation float64
	Suspicion  float64

	AssetName      string
	AssetType      AssetType
	RiskLevel      RiskLevel
	Price          float64
	PriceChangePct float64

	RivalName       string
	RivalReputation float64
	RivalSuspicion  float64
	RivalNetWorth   float64
}

// TurnReport is the per-turn diagnostic record: how the player action
// resolved, what each rival did, and what the turn unlocked. It is
// returned alongside the new state and never persisted.
type TurnReport struct {
	Turn         int                 `json:"turn"`
	Player       ActionResult        `json:"player"`
	RivalActions []RivalActionReport `json:"rivalActions"`
	Unlocked     []string            `json:"unlocked,omitempty"`
	LeveledUp    bool                `json:"leveledUp"`
}

type RivalActionReport struct {
	RivalID     string `json:"rivalId"`
	Action      Action `json:"action"`
	FromAdvisor bool   `json:"fromAdvisor"`
}

// Engine sequences one atomic turn transition. It holds no per-game state;
// different games can be processed concurrently by the same Engine.
type Engine struct {
	advisor Advisor
	log     *slog.Logger

	mu   sync.Mutex
	rand *mathrand.Rand
}

func NewEngine(advisor Advisor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		advisor: advisor,
		log:     logger,
		rand:    mathrand.New(mathrand.NewSource(time.Now().UnixNano())),
	}
}

// NewGame builds the initial state for a player. Given the same seed it
// produces the identical opening market.
func (e *Engine) NewGame(playerName, seed string) GameState {
	if seed == "" {
		seed = e.generateSeed()
	}
	return GameState{
		Turn: 0,
		Seed: seed,
		Player: Player{
			Name:       playerName,
			Level:      1,
			XP:         0,
			Cash:       100000,
			NetWorth:   100000,
			Reputation: 50,
			Suspicion:  0,
			Leverage:   1.0,
			Skills:     Skills{Algorithmics: 1, Negotiation: 1, Law: 1, Operations: 1},
			Network:    []string{},
			Holdings:   []Holding{},
		},
		Rivals:       DefaultRivals(),
		Assets:       InitializeAssets(seed),
		MarketEvents: []MarketEvent{},
		NewsItems:    []NewsItem{},
		Achievements: DefaultAchievements(),
		Settings: Settings{
			Difficulty:       "normal",
			MarketVolatility: 1.0,
			EnableNarrative:  true,
		},
	}
}

// ProcessTurn advances the game by exactly one turn: player action, rival
// actions in fixed rival order, market update, event injection, news,
// achievements, net-worth recompute, level-up check. A validation error
// leaves the state untouched and the turn not advanced; everything past
// validation always completes.
func (e *Engine) ProcessTurn(ctx context.Context, state *GameState, action Action) (*TurnReport, error) {
	if err := ValidateAction(action); err != nil {
		return nil, err
	}

	state.Turn++
	rng := turnStream(state.Seed, state.Turn)
	report := &TurnReport{Turn: state.Turn}

	report.Player = resolvePlayerAction(state, action, rng)
	if !report.Player.Applied {
		e.log.Warn("player action rejected",
			"turn", state.Turn,
			"action", string(action.Type),
			"reason", report.Player.Reason)
	}

	rivalActions := e.resolveRivalActions(ctx, state, rng, report)

	UpdateMarket(state, rng)

	state.MarketEvents = append(state.MarketEvents, generateEvents(state, rng)...)

	e.attachNews(ctx, state, action, rivalActions, rng)

	report.Unlocked = evaluateAchievements(state)

	recomputeNetWorth(state)

	report.LeveledUp = applyLevelUp(&state.Player, rng)

	return report, nil
}

func (e *Engine) resolveRivalActions(ctx context.Context, state *GameState, rng *Stream, report *TurnReport) []Action {
	summary := TurnSummary{Turn: state.Turn, MarketVolatility: state.Settings.MarketVolatility}
	actions := make([]Action, 0, len(state.Rivals))
	for i := range state.Rivals {
		rival := &state.Rivals[i]
		action, fromAdvisor := e.rivalAction(ctx, *rival, summary, rng)
		applyRivalAction(rival, action, rng)
		actions = append(actions, action)
		report.RivalActions = append(report.RivalActions, RivalActionReport{
			RivalID:     rival.ID,
			Action:      action,
			FromAdvisor: fromAdvisor,
		})
	}
	return actions
}

// rivalAction asks the advisor for a decision and falls back to the local
// weighted policy on any failure. There is no retry: a second attempt
// would double-count randomness the fallback already consumed.
func (e *Engine) rivalAction(ctx context.Context, rival Rival, summary TurnSummary, rng *Stream) (Action, bool) {
	if e.advisor != nil && e.advisor.Enabled() {
		callCtx, cancel := context.WithTimeout(ctx, advisorCallTimeout)
		action, err := e.advisor.DecideAction(callCtx, rival, summary)
		cancel()
		if err == nil {
			if vErr := ValidateAction(action); vErr == nil {
				return action, true
			}
			err = ErrUnknownAction
		}
		e.log.Warn("advisor decision failed, using fallback policy",
			"rival", rival.ID, "err", err)
	}
	return fallbackRivalAction(&rival, rng), false
}

// attachNews prepends this turn's news, newest first, keeping the 20 most
// recent items.
func (e *Engine) attachNews(ctx context.Context, state *GameState, playerAction Action, rivalActions []Action, rng *Stream) {
	var items []NewsItem
	if e.advisor != nil && e.advisor.Enabled() && state.Settings.EnableNarrative {
		items = e.advisorNews(ctx, state, playerAction, rivalActions, rng)
	}
	if len(items) == 0 {
		items = []NewsItem{fallbackNews(state.Turn, rng)}
	}

	state.NewsItems = append(items, state.NewsItems...)
	if len(state.NewsItems) > 20 {
		state.NewsItems = state.NewsItems[:20]
	}
}

func (e *Engine) advisorNews(ctx context.Context, state *GameState, playerAction Action, rivalActions []Action, rng *Stream) []NewsItem {
	var items []NewsItem

	write := func(prompt NewsPrompt) {
		callCtx, cancel := context.WithTimeout(ctx, advisorCallTimeout)
		defer cancel()
		item, err := e.advisor.WriteNews(callCtx, prompt)
		if err != nil {
			e.log.Warn("news generation failed", "kind", prompt.Kind, "err", err)
			return
		}
		items = append(items, item)
	}

	if playerAction.Type == ActionInvest || playerAction.Type == ActionExpose {
		write(NewsPrompt{
			Kind:       "player",
			Turn:       state.Turn,
			PlayerName: state.Player.Name,
			ActionType: string(playerAction.Type),
			Reputation: state.Player.Reputation,
			Suspicion:  state.Player.Suspicion,
		})
	}

	if len(state.Assets) > 0 {
		asset := state.Assets[int(rng.Next()*float64(len(state.Assets)))%len(state.Assets)]
		var changePct float64
		if n := len(asset.PriceHistory); n > 1 && asset.PriceHistory[n-2] != 0 {
			prev := asset.PriceHistory[n-2]
			changePct = (asset.CurrentPrice - prev) / prev * 100
		}
		write(NewsPrompt{
			Kind:           "market",
			Turn:           state.Turn,
			AssetName:      asset.Name,
			AssetType:      asset.Type,
			RiskLevel:      asset.RiskLevel,
			Price:          asset.CurrentPrice,
			PriceChangePct: changePct,
		})
	}

	for i, action := range rivalActions {
		if i >= len(state.Rivals) || rng.Next() >= 0.3 {
			continue
		}
		rival := state.Rivals[i]
		write(NewsPrompt{
			Kind:            "rival",
			Turn:            state.Turn,
			ActionType:      string(action.Type),
			RivalName:       rival.Name,
			RivalReputation: rival.Stats.Reputation,
			RivalSuspicion:  rival.Stats.Suspicion,
			RivalNetWorth:   rival.Stats.NetWorth,
		})
	}

	return items
}

// recomputeNetWorth refreshes every holding from the live asset price and
// derives net worth from cash plus holdings. Net worth is never trusted
// mid-turn; this is the only place that writes it.
func recomputeNetWorth(state *GameState) {
	var holdingsValue float64
	for i := range state.Player.Holdings {
		h := &state.Player.Holdings[i]
		if asset := findAsset(state.Assets, h.AssetID); asset != nil {
			h.CurrentValue = h.Quantity * asset.CurrentPrice
		}
		holdingsValue += h.CurrentValue
	}
	state.Player.NetWorth = state.Player.Cash + holdingsValue
}

// applyLevelUp checks the threshold once per turn. A turn that banks
// enough xp for two levels still grants only one; the surplus carries.
func applyLevelUp(p *Player, rng *Stream) bool {
	required := p.Level * 1000
	if p.XP < required {
		return false
	}
	p.Level++
	p.XP -= required

	switch int(rng.Next()*4) % 4 {
	case 0:
		p.Skills.Algorithmics++
	case 1:
		p.Skills.Negotiation++
	case 2:
		p.Skills.Law++
	case 3:
		p.Skills.Operations++
	}
	return true
}

// generateSeed mirrors the classic two-fragment base-36 default seed.
func (e *Engine) generateSeed() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strconv.FormatUint(e.rand.Uint64(), 36) + strconv.FormatUint(e.rand.Uint64(), 36)
}
