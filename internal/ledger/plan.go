// AngelaMos | 2026
// plan.go

package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Plan is an investment plan. The zero value is not a valid plan; users
// have no plan until their first plan deposit is approved.
type Plan string

const (
	PlanSilver  Plan = "Silver"
	PlanGolden  Plan = "Golden"
	PlanDiamond Plan = "Diamond"
)

var dailyEarnings = map[Plan]decimal.Decimal{
	PlanSilver:  decimal.NewFromInt(1),
	PlanGolden:  decimal.NewFromInt(2),
	PlanDiamond: decimal.NewFromFloat(3.5),
}

func ParsePlan(s string) (Plan, error) {
	p := Plan(s)
	if !p.Valid() {
		return "", fmt.Errorf("parse plan %q: %w", s, ErrInvalidPlan)
	}
	return p, nil
}

func (p Plan) Valid() bool {
	_, ok := dailyEarnings[p]
	return ok
}

func (p Plan) String() string {
	return string(p)
}

// DailyEarning returns the amount credited for one completed task day.
func (p Plan) DailyEarning() decimal.Decimal {
	return dailyEarnings[p]
}
