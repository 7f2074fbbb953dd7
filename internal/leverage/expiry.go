package leverage

import (
	"fmt"
	"time"
)

// SelectDefaultExpiration picks from dates the expiration closest to
// one year after today, the default a long-dated call buyer reaches
// for.
//
// Tie-break rule: when two dates are equidistant from the one-year
// mark, the earlier date wins. The rule is deliberately independent of
// input order so the selection is deterministic for any permutation of
// dates.
//
// Returns ErrEmptyInput when dates is empty.
func SelectDefaultExpiration(dates []time.Time, today time.Time) (time.Time, error) {
	if len(dates) == 0 {
		return time.Time{}, fmt.Errorf("%w: no expiration dates", ErrEmptyInput)
	}

	target := today.AddDate(0, 0, 365)

	best := dates[0]
	bestDist := absDuration(dates[0].Sub(target))
	for _, d := range dates[1:] {
		dist := absDuration(d.Sub(target))
		if dist < bestDist || (dist == bestDist && d.Before(best)) {
			best, bestDist = d, dist
		}
	}
	return best, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
