package report

import "github.com/shopspring/decimal"

// MembershipTier is one of the fixed membership price points
type MembershipTier struct {
	PriceID       string
	Name          string
	MonthlyAmount decimal.Decimal
}

var (
	// TierGold is the entry membership, $19.99 a month
	TierGold = MembershipTier{
		PriceID:       "gold_access",
		Name:          "Gold Access",
		MonthlyAmount: decimal.RequireFromString("19.99"),
	}
	// TierPlatinum is $49.99 a month
	TierPlatinum = MembershipTier{
		PriceID:       "platinum_access",
		Name:          "Platinum Access",
		MonthlyAmount: decimal.RequireFromString("49.99"),
	}
	// TierUltimate is $99.99 a month
	TierUltimate = MembershipTier{
		PriceID:       "ultimate_access",
		Name:          "Ultimate Access",
		MonthlyAmount: decimal.RequireFromString("99.99"),
	}

	// DefaultTier prices subscriptions whose price id matches no tier
	DefaultTier = TierGold
)

// MembershipTiers returns the closed tier table
func MembershipTiers() []MembershipTier {
	return []MembershipTier{TierGold, TierPlatinum, TierUltimate}
}

// TierPriceIDs returns the price ids of every known tier
func TierPriceIDs() []string {
	tiers := MembershipTiers()
	ids := make([]string, len(tiers))
	for i, t := range tiers {
		ids[i] = t.PriceID
	}
	return ids
}

// ResolveTier maps a price id to its tier, falling back to DefaultTier
func ResolveTier(priceID string) MembershipTier {
	for _, t := range MembershipTiers() {
		if t.PriceID == priceID {
			return t
		}
	}
	return DefaultTier
}
