package classifier

import "github.com/akave-ai/ledgerdesk/internal/model"

// Scoring weights. A category hit is worth CategoryWeight; priority hits are
// worth their tier's weight.
const (
	CategoryWeight = 1.0
	UrgentWeight   = 2.0
	HighWeight     = 1.5
	LowWeight      = 0.8
)

// maxCombinedWeight normalizes confidence: one category hit plus one urgent hit.
const maxCombinedWeight = CategoryWeight + UrgentWeight

// CategoryRule associates a category with its keyword phrases.
type CategoryRule struct {
	Category model.Category
	Keywords []string
}

// PriorityRule associates a priority tier with keyword phrases and a weight.
type PriorityRule struct {
	Priority model.Priority
	Keywords []string
	Weight   float64
}

// DefaultCategoryRules lists categories in tie-break order: on equal scores the
// earlier rule wins. "other" has no keywords and is the fallback.
func DefaultCategoryRules() []CategoryRule {
	return []CategoryRule{
		{Category: model.CategoryAccountAccess, Keywords: []string{"login", "password", "2fa", "two-factor", "authentication", "sign in", "access denied"}},
		{Category: model.CategoryTechnicalIssue, Keywords: []string{"bug", "error", "crash", "broken", "not working", "fails", "failure"}},
		{Category: model.CategoryBillingQuestion, Keywords: []string{"payment", "invoice", "refund", "charge", "subscription", "billing", "price"}},
		{Category: model.CategoryFeatureRequest, Keywords: []string{"enhancement", "suggestion", "improve", "add feature", "would like", "request"}},
		{Category: model.CategoryBugReport, Keywords: []string{"defect", "reproduction", "steps to reproduce", "reproduce", "consistently"}},
	}
}

// DefaultPriorityRules lists tiers in tie-break order. "medium" has no
// keywords and is the fallback.
func DefaultPriorityRules() []PriorityRule {
	return []PriorityRule{
		{Priority: model.PriorityUrgent, Weight: UrgentWeight, Keywords: []string{"can't access", "critical", "production down", "security", "urgent", "immediately", "asap now"}},
		{Priority: model.PriorityHigh, Weight: HighWeight, Keywords: []string{"important", "blocking", "asap", "high priority", "needed soon"}},
		{Priority: model.PriorityLow, Weight: LowWeight, Keywords: []string{"minor", "cosmetic", "suggestion", "nice to have", "eventually"}},
	}
}
