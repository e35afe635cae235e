package models

import "time"

// Supported metal codes (provider symbols).
const (
	MetalGold      = "XAU"
	MetalSilver    = "XAG"
	MetalPlatinum  = "XPT"
	MetalPalladium = "XPD"
)

// ProviderRecord is one historical record from the price provider: the metal
// price in the provider's base currency per troy ounce, optionally paired with
// an FX rate to the requested currency (0 when the base currency was requested).
type ProviderRecord struct {
	Date     time.Time `json:"date"`
	PriceUSD float64   `json:"price_usd"` // per troy ounce, base currency
	FXRate   float64   `json:"fx_rate,omitempty"`
}

// PricePerGram converts the record to a price per gram in the requested currency.
func (r ProviderRecord) PricePerGram() float64 {
	fx := r.FXRate
	if fx == 0 {
		fx = 1
	}
	return (r.PriceUSD / GramsPerTroyOunce) / fx
}

// LatestQuote is the provider's live spot quote, already per gram in the
// requested currency.
type LatestQuote struct {
	Metal        string    `json:"metal"`
	Currency     string    `json:"currency"`
	PricePerGram float64   `json:"price_per_gram"`
	Date         time.Time `json:"date"`
}
