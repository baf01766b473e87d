package game

const priceHistoryCap = 100

// catalog is the fixed set of tradable instruments. Initial prices are the
// base perturbed by up to half the spread in either direction, drawn from
// the seeded stream, so a seed always produces the same opening market.
var catalog = []struct {
	id     string
	name   string
	typ    AssetType
	base   float64
	spread float64
	vol    float64
	risk   RiskLevel
	min    float64
	desc   string
}{
	{"TECH001", "TechCorp Inc.", AssetStocks, 125.50, 20, 0.15, RiskMedium, 1000,
		"Leading technology company specializing in AI and cloud computing"},
	{"BLUE001", "Global Industries", AssetStocks, 85.25, 10, 0.08, RiskLow, 500,
		"Diversified blue-chip company with stable dividends"},
	{"BTC001", "Bitcoin", AssetCrypto, 45000, 10000, 0.35, RiskExtreme, 100,
		"The original cryptocurrency with high volatility"},
	{"ETH001", "Ethereum", AssetCrypto, 2800, 500, 0.32, RiskExtreme, 100,
		"Smart contract platform and second-largest cryptocurrency"},
	{"RE001", "Manhattan Office Complex", AssetRealEstate, 2500000, 500000, 0.05, RiskLow, 100000,
		"Prime commercial real estate in Manhattan"},
	{"RE002", "Silicon Valley Apartments", AssetRealEstate, 1800000, 300000, 0.08, RiskMedium, 50000,
		"Residential complex in high-demand tech area"},
	{"START001", "QuantumLeap AI", AssetStartups, 10.00, 5, 0.45, RiskExtreme, 10000,
		"Early-stage AI startup with breakthrough quantum algorithms"},
	{"START002", "GreenTech Solutions", AssetStartups, 15.75, 8, 0.38, RiskHigh, 5000,
		"Clean energy startup with promising solar technology"},
	{"GOLD001", "Gold Futures", AssetCommodities, 1950, 100, 0.12, RiskLow, 1000,
		"Precious metals hedge against inflation"},
	{"OIL001", "Crude Oil", AssetCommodities, 75, 15, 0.25, RiskHigh, 500,
		"Energy commodity with geopolitical sensitivity"},
	{"BOND001", "Treasury Bonds", AssetBonds, 1000, 50, 0.03, RiskLow, 1000,
		"Government bonds with guaranteed returns"},
	{"TBILL001", "Treasury Bills", AssetBonds, 100, 2, 0.02, RiskLow, 1000,
		"Short-dated government paper, the closest thing to parking cash"},
}

// InitializeAssets builds the opening market for a seed.
func InitializeAssets(seed string) []Asset {
	rng := NewStream(seed)
	assets := make([]Asset, 0, len(catalog))
	for _, c := range catalog {
		price := c.base + (rng.Next()-0.5)*c.spread
		assets = append(assets, Asset{
			ID:                c.id,
			Name:              c.name,
			Type:              c.typ,
			CurrentPrice:      price,
			PriceHistory:      []float64{price},
			Volatility:        c.vol,
			RiskLevel:         c.risk,
			MinimumInvestment: c.min,
			Description:       c.desc,
		})
	}
	return assets
}

// Per-turn drift gives each asset class its long-run character.
func assetTrend(t AssetType) float64 {
	switch t {
	case AssetStocks:
		return 0.002
	case AssetCrypto:
		return 0.001
	case AssetRealEstate:
		return 0.001
	case AssetStartups:
		return -0.001
	case AssetCommodities:
		return 0.0005
	case AssetBonds:
		return 0.0002
	default:
		return 0
	}
}

// UpdateMarket advances every asset price by one turn: a fat-tailed random
// walk plus trend, then the multipliers of currently active market events,
// then a rare market-wide shock.
func UpdateMarket(state *GameState, rng *Stream) {
	for i := range state.Assets {
		updateAssetPrice(&state.Assets[i], state.Settings.MarketVolatility, rng)
	}

	for _, ev := range state.MarketEvents {
		if !eventActive(ev, state.Turn) {
			continue
		}
		for i := range state.Assets {
			a := &state.Assets[i]
			if eventAffects(ev, a.Type) {
				a.CurrentPrice *= ev.Impact.PriceMultiplier
			}
		}
	}

	if rng.Next() < 0.02 {
		applyMarketShock(state.Assets, rng)
	}
}

func updateAssetPrice(a *Asset, marketVolatility float64, rng *Stream) {
	vol := a.Volatility * marketVolatility

	var change float64
	if rng.Next() < 0.95 {
		change = (rng.Next() - 0.5) * vol * 2
	} else {
		// Fat-tail draw on a 4x wider interval.
		change = (rng.Next() - 0.5) * vol * 8
	}
	change += assetTrend(a.Type)

	// Floor at 10% of the pre-turn price so one step can never wipe an
	// asset out; share-quantity math needs prices to stay positive.
	next := a.CurrentPrice * (1 + change)
	if floor := a.CurrentPrice * 0.1; next < floor {
		next = floor
	}
	a.CurrentPrice = next

	a.PriceHistory = append(a.PriceHistory, next)
	if len(a.PriceHistory) > priceHistoryCap {
		a.PriceHistory = a.PriceHistory[len(a.PriceHistory)-priceHistoryCap:]
	}
}

// eventActive reports whether ev still applies on the given turn. Events
// take effect the turn after they are generated and expire once their
// duration has elapsed; the marketEvents list itself is append-only.
func eventActive(ev MarketEvent, turn int) bool {
	return turn > ev.Turn && turn <= ev.Turn+ev.Impact.Duration
}

func eventAffects(ev MarketEvent, t AssetType) bool {
	for _, at := range ev.Impact.AssetTypes {
		if at == t {
			return true
		}
	}
	return false
}

func applyMarketShock(assets []Asset, rng *Stream) {
	var multiplier float64
	if rng.Next() < 0.5 {
		multiplier = rng.between(0.7, 0.9) // crash
	} else {
		multiplier = rng.between(1.3, 1.7) // boom
	}
	for i := range assets {
		if rng.Next() < 0.3 {
			assets[i].CurrentPrice *= multiplier
		}
	}
}

func findAsset(assets []Asset, id string) *Asset {
	for i := range assets {
		if assets[i].ID == id {
			return &assets[i]
		}
	}
	return nil
}
