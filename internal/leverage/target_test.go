package leverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTargetRule(t *testing.T) {
	tests := []struct {
		name string
		rule string
		spot float64
		want float64
	}{
		{name: "pct rise", rule: "PCT:20", spot: 100, want: 20},
		{name: "pct decline", rule: "PCT:-10", spot: 100, want: -10},
		{name: "pct lowercase", rule: "pct:20", spot: 100, want: 20},
		{name: "abs target", rule: "ABS:150", spot: 100, want: 50},
		{name: "abs below spot", rule: "ABS:90", spot: 100, want: -10},
		{name: "price expression", rule: "{PRICE}*1.2", spot: 100, want: 20},
		{name: "price expression with offset", rule: "{PRICE}+25", spot: 100, want: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTargetRule(tt.rule, tt.spot)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveTargetRuleErrors(t *testing.T) {
	tests := []struct {
		name    string
		rule    string
		spot    float64
		wantErr error
	}{
		{name: "empty rule", rule: "", spot: 100, wantErr: ErrInvalidTargetRule},
		{name: "unknown prefix", rule: "MOVE:20", spot: 100, wantErr: ErrInvalidTargetRule},
		{name: "pct not a number", rule: "PCT:high", spot: 100, wantErr: ErrInvalidTargetRule},
		{name: "abs not a number", rule: "ABS:soon", spot: 100, wantErr: ErrInvalidTargetRule},
		{name: "broken expression", rule: "{PRICE}*", spot: 100, wantErr: ErrInvalidTargetRule},
		{name: "abs with zero spot", rule: "ABS:150", spot: 0, wantErr: ErrInvalidScenario},
		{name: "expression with zero spot", rule: "{PRICE}*1.2", spot: 0, wantErr: ErrInvalidScenario},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTargetRule(tt.rule, tt.spot)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
