package chain

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// synthDataProvider implements Provider generating synthetic data.
// Output is deterministic per (seed, symbol, expiry), which makes it
// useful for offline runs and tests.
type synthDataProvider struct {
	seed      int64
	secondary Provider
}

func NewSyntheticProvider(seed int64) Provider { return &synthDataProvider{seed: seed} }

func (synthDataProv *synthDataProvider) Secondary() Provider {
	return synthDataProv.secondary
}

// GetExpirations returns the third Friday of each of the next 18 months.
func (synthDataProv *synthDataProvider) GetExpirations(ctx context.Context, underlying string) ([]time.Time, error) {
	now := time.Now().UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var out []time.Time
	for m := 0; m < 18; m++ {
		exp := thirdFriday(first.AddDate(0, m, 0))
		if exp.After(now) {
			out = append(out, exp)
		}
	}
	return out, nil
}

func (synthDataProv *synthDataProvider) GetSpotPrice(ctx context.Context, underlying string) (float64, error) {
	// Stable per symbol: 50..450 band.
	h := symbolHash(underlying)
	price := 50.0 + float64(h%400) + float64(h%100)/100.0
	return price, nil
}

// GetChain builds a call chain around the synthetic spot price with
// strikes from 50% to 150% of spot. Premiums are intrinsic value plus a
// time-value hump that decays away from the money; deep out-of-the-money
// strikes round down to a zero ask, as thinly quoted chains do.
func (synthDataProv *synthDataProvider) GetChain(ctx context.Context, underlying string, expiry time.Time) ([]Quote, error) {
	spot, _ := synthDataProv.GetSpotPrice(ctx, underlying)

	rng := rand.New(rand.NewSource(synthDataProv.seed ^ int64(symbolHash(underlying)) ^ expiry.Unix()))

	years := time.Until(expiry).Hours() / 24 / 365.25
	if years < 1.0/365.25 {
		years = 1.0 / 365.25
	}

	step := strikeInterval(spot)
	lo := math.Ceil(spot * 0.5 / step) * step
	hi := spot * 1.5

	var out []Quote
	for strike := lo; strike <= hi; strike += step {
		intrinsic := math.Max(spot-strike, 0)
		moneyness := (strike - spot) / spot
		timeValue := spot * 0.08 * math.Sqrt(years) * math.Exp(-2*moneyness*moneyness)
		noise := 1 + rng.NormFloat64()*0.02

		ask := math.Round((intrinsic+timeValue)*noise*100) / 100
		if ask < 0.01 {
			ask = 0 // no ask quoted
		}
		bid := math.Round(ask*0.95*100) / 100

		out = append(out, Quote{
			Strike: strike,
			Bid:    bid,
			Ask:    ask,
			Volume: float64(rng.Intn(5000)),
		})
	}
	return out, nil
}

// strikeInterval picks a listing increment appropriate for the price.
func strikeInterval(spot float64) float64 {
	switch {
	case spot < 25:
		return 0.5
	case spot < 100:
		return 1
	case spot < 250:
		return 2.5
	case spot < 1000:
		return 5
	default:
		return 10
	}
}

// thirdFriday returns the third Friday of the month containing t.
func thirdFriday(t time.Time) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Friday) - int(first.Weekday()) + 7) % 7
	return first.AddDate(0, 0, offset+14)
}

func symbolHash(symbol string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(symbol))
	return h.Sum32()
}
