package alert

import (
	"fmt"
	"strings"
	"time"

	"whalewatch/internal/model"
)

// FormatConsensusAlert renders an alert as Telegram HTML.
func FormatConsensusAlert(alert *model.ConsensusAlert) string {
	var builder strings.Builder

	title := alert.TokenSymbol
	if title == "" {
		title = shortAddress(alert.TokenMint)
	}
	builder.WriteString(fmt.Sprintf("🐋 <b>WHALE CONSENSUS: %s</b>\n\n", title))

	if alert.TokenName != "" {
		builder.WriteString(fmt.Sprintf("Token: <b>%s</b>\n", alert.TokenName))
	}
	builder.WriteString(fmt.Sprintf("Mint: <code>%s</code>\n", alert.TokenMint))
	builder.WriteString(fmt.Sprintf("Whales: <b>%d</b>\n", alert.TotalWhales))
	builder.WriteString(fmt.Sprintf("Total: <b>$%.2f</b> (%.2f SOL)\n", alert.TotalAmountUSD, alert.TotalAmountSol))

	spread := alert.LastPurchaseTime.Sub(alert.FirstPurchaseTime)
	builder.WriteString(fmt.Sprintf("Spread: <b>%s</b>\n", spread.Round(time.Second)))

	builder.WriteString(fmt.Sprintf("Signal: <b>%s</b> (%d%%)\n", alert.TradingSignal.Type, alert.TradingSignal.Confidence))
	builder.WriteString(fmt.Sprintf("Strength: <b>%s</b> (%d/100)\n", alert.RiskAssessment.Level, alert.RiskAssessment.Score))

	if market := alert.MarketData; market != nil {
		builder.WriteString("\n📊 Market\n")
		if market.MarketCap != nil {
			builder.WriteString(fmt.Sprintf("  MCap: $%.0f\n", *market.MarketCap))
		}
		if market.Volume24h != nil {
			builder.WriteString(fmt.Sprintf("  Vol 24h: $%.0f\n", *market.Volume24h))
		}
		if market.PriceChange24h != nil {
			builder.WriteString(fmt.Sprintf("  Change 24h: %+.1f%%\n", *market.PriceChange24h))
		}
		if market.Liquidity != nil {
			builder.WriteString(fmt.Sprintf("  Liquidity: $%.0f\n", *market.Liquidity))
		}
	}

	if social := alert.SocialData; social != nil {
		builder.WriteString("\n🌐 Social\n")
		builder.WriteString(fmt.Sprintf("  Rating: %d/5 (%s)\n", social.SocialRating, social.RiskLevel))
		if len(social.ActivePlatforms) > 0 {
			builder.WriteString(fmt.Sprintf("  Platforms: %s\n", strings.Join(social.ActivePlatforms, ", ")))
		}
		if social.TotalFollowers > 0 {
			builder.WriteString(fmt.Sprintf("  Followers: %d\n", social.TotalFollowers))
		}
	}

	builder.WriteString("\n👛 Buyers\n")
	for _, whale := range alert.Whales {
		builder.WriteString(fmt.Sprintf("  • %s — $%.2f\n", whaleLabel(whale), whale.AmountUSD))
	}

	builder.WriteString(fmt.Sprintf("\n<a href=\"https://solscan.io/token/%s\">View on Solscan</a>", alert.TokenMint))

	return builder.String()
}

// FormatPurchase renders a single qualifying purchase as Telegram HTML.
func FormatPurchase(event model.PurchaseEvent) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("💸 <b>%s</b> bought <code>%s</code>\n", whaleLabel(event), shortAddress(event.TokenMint)))
	builder.WriteString(fmt.Sprintf("Amount: <b>$%.2f</b> (%.2f SOL)\n", event.AmountUSD, event.AmountSol))
	builder.WriteString(fmt.Sprintf("<a href=\"https://solscan.io/tx/%s\">View on Solscan</a>", event.Signature))
	return builder.String()
}

func whaleLabel(event model.PurchaseEvent) string {
	if event.WalletName != "" {
		return event.WalletName
	}
	return shortAddress(event.WalletAddress)
}

func shortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "…" + address[len(address)-4:]
}
