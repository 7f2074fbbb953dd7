package leverage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactkeval/option-leverage/internal/testutil"
)

func TestSelectDefaultExpiration(t *testing.T) {
	tests := []struct {
		name  string
		dates []string
		today string
		want  string
	}{
		{
			// today+365 ~ 2026-01-10; 2026-01-05 is 5 days off,
			// 2025-01-01 is over a year off.
			name:  "nearest to one year out",
			dates: []string{"2025-01-01", "2026-01-05"},
			today: "2025-01-10",
			want:  "2026-01-05",
		},
		{
			name:  "single date",
			dates: []string{"2025-06-20"},
			today: "2025-01-10",
			want:  "2025-06-20",
		},
		{
			// 2026-01-05 and 2026-01-15 are both 5 days from the
			// one-year mark: the earlier date wins.
			name:  "equidistant tie prefers earlier",
			dates: []string{"2026-01-15", "2026-01-05"},
			today: "2025-01-10",
			want:  "2026-01-05",
		},
		{
			name:  "order independent",
			dates: []string{"2026-01-05", "2026-01-15"},
			today: "2025-01-10",
			want:  "2026-01-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dates := make([]time.Time, 0, len(tt.dates))
			for _, s := range tt.dates {
				dates = append(dates, testutil.MustParseDate(t, s))
			}

			got, err := SelectDefaultExpiration(dates, testutil.MustParseDate(t, tt.today))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
		})
	}
}

func TestSelectDefaultExpirationEmpty(t *testing.T) {
	_, err := SelectDefaultExpiration(nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyInput)
}
