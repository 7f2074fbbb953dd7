package chain

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/contactkeval/option-leverage/internal/logger"
)

// localFileDataProvider implements Provider from local CSV files.
//
// Layout under dir:
//
//	<SYMBOL>/spot.csv          single line: the current price
//	<SYMBOL>/<YYYY-MM-DD>.csv  chain rows: strike,bid,ask[,last,volume]
//
// A header row is detected and skipped. Missing data falls back to the
// secondary provider when one is configured.
type localFileDataProvider struct {
	dir       string
	secondary Provider
}

// NewLocalFileDataProvider convenience constructor.
func NewLocalFileDataProvider(dir string, secondary Provider) *localFileDataProvider {
	return &localFileDataProvider{dir: dir, secondary: secondary}
}

func (localFileDataProv *localFileDataProvider) Secondary() Provider {
	return localFileDataProv.secondary
}

func (localFileDataProv *localFileDataProvider) GetExpirations(ctx context.Context, underlying string) ([]time.Time, error) {
	entries, err := os.ReadDir(filepath.Join(localFileDataProv.dir, strings.ToUpper(underlying)))
	if err != nil {
		if localFileDataProv.secondary != nil {
			return localFileDataProv.secondary.GetExpirations(ctx, underlying)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrNoExpirations, underlying, err)
	}

	expiryMap := map[string]time.Time{}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".csv")
		t, err := time.Parse("2006-01-02", name)
		if err != nil {
			continue // spot.csv and anything else
		}
		expiryMap[name] = t
	}

	if len(expiryMap) == 0 {
		if localFileDataProv.secondary != nil {
			return localFileDataProv.secondary.GetExpirations(ctx, underlying)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoExpirations, underlying)
	}

	return sortedUniqueDates(expiryMap), nil
}

func (localFileDataProv *localFileDataProvider) GetChain(ctx context.Context, underlying string, expiry time.Time) ([]Quote, error) {
	path := filepath.Join(
		localFileDataProv.dir,
		strings.ToUpper(underlying),
		expiry.Format("2006-01-02")+".csv",
	)

	records, err := readCSV(path)
	if err != nil {
		if localFileDataProv.secondary != nil {
			return localFileDataProv.secondary.GetChain(ctx, underlying, expiry)
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNoChain, underlying, expiry.Format("2006-01-02"), err)
	}

	var quotes []Quote
	for _, row := range records {
		if len(row) < 3 {
			continue
		}

		strike, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			continue // header or malformed row
		}
		bid, _ := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		ask, _ := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)

		q := Quote{Strike: strike, Bid: bid, Ask: ask}
		if len(row) > 3 {
			q.LastPrice, _ = strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		}
		if len(row) > 4 {
			q.Volume, _ = strconv.ParseFloat(strings.TrimSpace(row[4]), 64)
		}
		quotes = append(quotes, q)
	}

	if len(quotes) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNoChain, underlying, expiry.Format("2006-01-02"))
	}

	return normalizeChain(quotes), nil
}

func (localFileDataProv *localFileDataProvider) GetSpotPrice(ctx context.Context, underlying string) (float64, error) {
	path := filepath.Join(localFileDataProv.dir, strings.ToUpper(underlying), "spot.csv")

	records, err := readCSV(path)
	if err != nil {
		if localFileDataProv.secondary != nil {
			return localFileDataProv.secondary.GetSpotPrice(ctx, underlying)
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrNoSpotPrice, underlying, err)
	}

	for _, row := range records {
		if len(row) == 0 {
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(row[0]), 64)
		if err != nil {
			continue
		}
		if price > 0 {
			return price, nil
		}
	}

	return 0, fmt.Errorf("%w: %s", ErrNoSpotPrice, underlying)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		logger.Tracef("open csv %s: %v", path, err)
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
