package notifier

import (
	"fmt"
	"strings"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/calculator"
	"CurrencySentinel/internal/model"
	"CurrencySentinel/internal/strategy"
)

// FormatReport summarizes the latest row of each window as an HTML Telegram message.
func FormatReport(rep *analysis.Report) string {
	var b strings.Builder

	last, ok := rep.Series.Last()
	if !ok {
		return fmt.Sprintf("📊 <b>%s</b>\n\nno rows in analysis range", rep.Symbol)
	}
	first := rep.Series.Points[0]

	b.WriteString(fmt.Sprintf("📊 <b>%s</b> | %s\n", rep.Symbol, last.Date.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Period: %s → %s (%d sessions)\n",
		first.Date.Format("2006-01-02"), last.Date.Format("2006-01-02"), rep.Series.Len()))
	b.WriteString(fmt.Sprintf("Close: %.4f\n", last.Close))
	if high, low, err := calculator.PriceRange(rep.Series.Points, 0); err == nil {
		pos, _ := calculator.RangePosition(last.Close, high, low)
		b.WriteString(fmt.Sprintf("High/Low: %.4f / %.4f (%.0f%%)\n", high, low, pos*100))
	}

	for _, res := range rep.Results {
		ind := res.Indicators
		n := ind.Len() - 1
		sma, bb, cci, combined := res.Decisions.Latest()

		b.WriteString(fmt.Sprintf("\n📈 <b>Window %dd</b>\n", res.Window))
		b.WriteString(fmt.Sprintf("  SMA: %.4f → %s\n", ind.SMA[n], sma))
		b.WriteString(fmt.Sprintf("  Bands: %.4f / %.4f → %s\n", ind.Lower[n], ind.Upper[n], bb))
		b.WriteString(fmt.Sprintf("  CCI: %+.1f (%s) → %s\n", ind.CCI[n], cciZone(ind.CCI[n]), cci))
		b.WriteString(fmt.Sprintf("  Combined: %s\n", decisionBadge(combined)))
	}
	return b.String()
}

// FormatHelp lists the supported chat commands.
func FormatHelp() string {
	return "Commands:\n• /signal latest decisions\n• /run fetch and analyze now\n• /help this message"
}

func cciZone(v float64) string {
	switch {
	case v > strategy.CCIOverbought:
		return "overbought"
	case v < strategy.CCIOversold:
		return "oversold"
	default:
		return "neutral"
	}
}

func decisionBadge(d model.Decision) string {
	switch d {
	case model.Buy:
		return "🟢 BUY"
	case model.Sell:
		return "🔴 SELL"
	default:
		return "⚪ NEUTRAL"
	}
}
