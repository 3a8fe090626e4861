package enum

import (
	"encoding/json"
	"fmt"
)

// RevenueCategory identifies one of the six transaction kinds that produce revenue
type RevenueCategory int

const (
	RevenueCategoryTrackLicense RevenueCategory = iota
	RevenueCategorySyncProposal
	RevenueCategoryCustomSync
	RevenueCategoryWhiteLabelSetup
	RevenueCategoryWhiteLabelMonthly
	RevenueCategoryMembershipSubscription
)

// CategoryCount is the size of the closed category set
const CategoryCount = 6

var revenueCategoryKeys = [CategoryCount]string{
	"track_license",
	"sync_proposal",
	"custom_sync",
	"white_label_setup",
	"white_label_monthly",
	"membership_subscription",
}

var revenueCategoryLabels = [CategoryCount]string{
	"Track Licenses",
	"Sync Proposals",
	"Custom Sync",
	"White Label Setup",
	"White Label Monthly",
	"Memberships",
}

var revenueCategoryShortLabels = [CategoryCount]string{
	"Licenses",
	"Sync",
	"Custom",
	"WL Setup",
	"WL Monthly",
	"Members",
}

// RevenueCategories returns every category in report order
func RevenueCategories() []RevenueCategory {
	return []RevenueCategory{
		RevenueCategoryTrackLicense,
		RevenueCategorySyncProposal,
		RevenueCategoryCustomSync,
		RevenueCategoryWhiteLabelSetup,
		RevenueCategoryWhiteLabelMonthly,
		RevenueCategoryMembershipSubscription,
	}
}

// Valid reports whether c is one of the six known categories
func (c RevenueCategory) Valid() bool {
	return c >= 0 && int(c) < CategoryCount
}

func (c RevenueCategory) String() string {
	if !c.Valid() {
		return fmt.Sprintf("RevenueCategory(%d)", int(c))
	}
	return revenueCategoryKeys[c]
}

// Label returns the display name used in exports
func (c RevenueCategory) Label() string {
	if !c.Valid() {
		return c.String()
	}
	return revenueCategoryLabels[c]
}

// ShortLabel returns a compact column header for narrow tables
func (c RevenueCategory) ShortLabel() string {
	if !c.Valid() {
		return c.String()
	}
	return revenueCategoryShortLabels[c]
}

// ParseRevenueCategory converts a category key such as "sync_proposal"
func ParseRevenueCategory(s string) (RevenueCategory, error) {
	for i, key := range revenueCategoryKeys {
		if key == s {
			return RevenueCategory(i), nil
		}
	}
	return 0, fmt.Errorf("unknown revenue category %q", s)
}

func (c RevenueCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *RevenueCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseRevenueCategory(str)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
