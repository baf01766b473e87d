package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/Anthonytesla02/AxelTycoon/internal/game"
	"github.com/Anthonytesla02/AxelTycoon/internal/store"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func renderGame(rec store.Record) {
	s := rec.GameData
	p := s.Player

	accent.Printf("\n== %s / TURN %d ==\n", strings.ToUpper(p.Name), s.Turn)
	fmt.Printf("Cash:       $%s\n", comma(p.Cash))
	fmt.Printf("Net Worth:  $%s\n", comma(p.NetWorth))
	fmt.Printf("Reputation: %s\n", colorizeGauge(p.Reputation, false))
	fmt.Printf("Suspicion:  %s\n", colorizeGauge(p.Suspicion, true))
	fmt.Printf("Level:      %d (%d xp, next at %d)\n", p.Level, p.XP, p.Level*1000)
	fmt.Printf("Skills:     algo=%d neg=%d law=%d ops=%d\n",
		p.Skills.Algorithmics, p.Skills.Negotiation, p.Skills.Law, p.Skills.Operations)

	if len(p.Holdings) > 0 {
		fmt.Println()
		accent.Println("Holdings")
		fmt.Printf("%-10s %-12s %12s %12s %12s\n", "ASSET", "TYPE", "QTY", "BUY", "VALUE")
		for _, h := range p.Holdings {
			fmt.Printf("%-10s %-12s %12.4f %12.2f %12s\n",
				h.AssetID, h.AssetType, h.Quantity, h.PurchasePrice, comma(h.CurrentValue))
		}
	}

	fmt.Println()
	accent.Println("Market")
	fmt.Printf("%-10s %-24s %-8s %12s %9s\n", "ID", "NAME", "RISK", "PRICE", "CHANGE")
	for _, a := range s.Assets {
		fmt.Printf("%-10s %-24s %-8s %12.2f %9s\n",
			a.ID, truncate(a.Name, 24), a.RiskLevel, a.CurrentPrice, colorizePercent(lastChangePct(a)))
	}

	fmt.Println()
	accent.Println("Rivals")
	fmt.Printf("%-4s %-18s %14s %6s %6s %-14s\n", "#", "NAME", "NET WORTH", "REP", "SUSP", "LAST ACTION")
	for i, r := range s.Rivals {
		fmt.Printf("%-4d %-18s %14s %6.0f %6.0f %-14s\n",
			i, truncate(r.Name, 18), comma(r.Stats.NetWorth), r.Stats.Reputation, r.Stats.Suspicion, r.LastAction)
	}

	if len(s.NewsItems) > 0 {
		fmt.Println()
		accent.Println("News")
		limit := len(s.NewsItems)
		if limit > 5 {
			limit = 5
		}
		for _, item := range s.NewsItems[:limit] {
			when := time.UnixMilli(item.Timestamp).Local().Format("15:04")
			fmt.Printf("[%s] %s - %s\n", when, warn.Sprint(item.Title), item.Content)
		}
	}
	fmt.Println()
}

func renderReport(report game.TurnReport) {
	accent.Printf("\n== TURN %d RESOLVED ==\n", report.Turn)
	if report.Player.Applied {
		fmt.Printf("Your %s: %s\n", report.Player.Action.Type, colorizeOutcome(report.Player.Outcome))
	} else {
		printWarn(fmt.Sprintf("Your %s did not go through: %s", report.Player.Action.Type, report.Player.Reason))
	}
	for _, ra := range report.RivalActions {
		source := "instinct"
		if ra.FromAdvisor {
			source = "advisor"
		}
		fmt.Printf("%-10s -> %s (%s)\n", ra.RivalID, ra.Action.Type, source)
	}
	if len(report.Unlocked) > 0 {
		printSuccess("Achievements unlocked: " + strings.Join(report.Unlocked, ", "))
	}
	if report.LeveledUp {
		printSuccess("Level up!")
	}
}

func renderGamesList(games []store.Record) {
	accent.Println("\n== SAVED GAMES ==")
	if len(games) == 0 {
		printInfo("No saved games.")
		return
	}
	fmt.Printf("%-36s %-16s %6s %14s %-16s\n", "ID", "PLAYER", "TURN", "NET WORTH", "UPDATED")
	for _, g := range games {
		fmt.Printf("%-36s %-16s %6d %14s %-16s\n",
			g.ID,
			truncate(g.PlayerName, 16),
			g.Turn,
			comma(g.GameData.Player.NetWorth),
			g.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Println()
}

func lastChangePct(a game.Asset) float64 {
	n := len(a.PriceHistory)
	if n < 2 || a.PriceHistory[n-2] == 0 {
		return 0
	}
	prev := a.PriceHistory[n-2]
	return (a.CurrentPrice - prev) / prev * 100
}

func colorizeOutcome(out game.Outcome) string {
	switch out {
	case game.GreatSuccess:
		return success.Sprint(string(out))
	case game.Success:
		return success.Sprint(string(out))
	case game.Failure:
		return warn.Sprint(string(out))
	case game.Catastrophic:
		return danger.Sprint(string(out))
	default:
		return neutral.Sprint(string(out))
	}
}

// colorizeGauge renders a 0-100 stat; for inverted gauges like suspicion,
// high is bad.
func colorizeGauge(v float64, inverted bool) string {
	text := fmt.Sprintf("%.0f/100", v)
	high := v >= 70
	low := v <= 30
	if inverted {
		high, low = low, high
	}
	switch {
	case high:
		return success.Sprint(text)
	case low:
		return danger.Sprint(text)
	default:
		return warn.Sprint(text)
	}
}

func colorizePercent(v float64) string {
	text := fmt.Sprintf("%+.2f%%", v)
	switch {
	case v > 0:
		return success.Sprint(text)
	case v < 0:
		return danger.Sprint(text)
	default:
		return neutral.Sprint(text)
	}
}

func comma(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	frac := int64((v - float64(whole)) * 100)
	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
		if len(s) > pre {
			b.WriteByte(',')
		}
	}
	for i := pre; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return fmt.Sprintf("%s%s.%02d", sign, b.String(), frac)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
