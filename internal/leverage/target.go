package leverage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/contactkeval/option-leverage/internal/logger"
)

// ErrInvalidTargetRule reports a target expression that cannot be
// parsed or evaluated.
var ErrInvalidTargetRule = errors.New("invalid target rule")

// ResolveTargetRule converts a target expression into a percentage move
// relative to spot.
//
// Supported formats:
//   - PCT:20        a 20% rise (PCT:-10 for a decline)
//   - ABS:150       an absolute target price
//   - {PRICE}*1.2   an expression over the spot price
//
// Parameters:
//   - rule: target expression
//   - spot: current underlying price, must be positive for ABS and
//     expression forms
//
// Returns:
//   - float64: the percentage move (20 means +20%)
//   - error: if the rule cannot be evaluated
func ResolveTargetRule(rule string, spot float64) (float64, error) {
	rule = strings.TrimSpace(strings.ToUpper(rule))
	logger.Debugf("event=resolve_target rule=%s spot=%.2f", rule, spot)

	if rule == "" {
		return 0, fmt.Errorf("%w: empty rule", ErrInvalidTargetRule)
	}

	if strings.HasPrefix(rule, "PCT:") {
		pct, err := strconv.ParseFloat(strings.TrimPrefix(rule, "PCT:"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTargetRule, rule, err)
		}
		return pct, nil
	}

	if strings.HasPrefix(rule, "ABS:") {
		price, err := strconv.ParseFloat(strings.TrimPrefix(rule, "ABS:"), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTargetRule, rule, err)
		}
		return priceToPct(price, spot)
	}

	// Expression over the spot price
	if strings.Contains(rule, "{PRICE}") {
		evalStr := strings.ReplaceAll(rule, "{PRICE}", fmt.Sprintf("%f", spot))

		evalExpr, err := govaluate.NewEvaluableExpression(evalStr)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTargetRule, rule, err)
		}

		result, err := evalExpr.Evaluate(nil)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %v", ErrInvalidTargetRule, rule, err)
		}

		price, ok := result.(float64)
		if !ok {
			return 0, fmt.Errorf("%w: %s: non-numeric result", ErrInvalidTargetRule, rule)
		}
		return priceToPct(price, spot)
	}

	return 0, fmt.Errorf("%w: %s", ErrInvalidTargetRule, rule)
}

func priceToPct(price, spot float64) (float64, error) {
	if spot <= 0 {
		return 0, fmt.Errorf("%w: spot %.2f must be positive", ErrInvalidScenario, spot)
	}
	return (price/spot - 1) * 100, nil
}
