package classifier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akave-ai/ledgerdesk/internal/classifier"
	"github.com/akave-ai/ledgerdesk/internal/model"
)

func TestEngine_Classify(t *testing.T) {
	engine := classifier.NewEngine()

	tests := []struct {
		name         string
		subject      string
		description  string
		wantCategory model.Category
		wantPriority model.Priority
		wantConf     float64
		wantKeywords []string
	}{
		{
			name:         "no keywords falls back to defaults",
			subject:      "Hello there",
			description:  "Just saying hi to the team today.",
			wantCategory: model.CategoryOther,
			wantPriority: model.PriorityMedium,
			wantConf:     0,
			wantKeywords: []string{},
		},
		{
			name:         "more matches win across categories",
			subject:      "Login and password issue",
			description:  "My payment failed and the invoice shows a refund on my billing page.",
			wantCategory: model.CategoryBillingQuestion,
			wantPriority: model.PriorityMedium,
			wantConf:     1,
			wantKeywords: []string{"payment", "invoice", "refund", "billing"},
		},
		{
			name:         "equal scores keep the earlier category",
			subject:      "Login error",
			description:  "Something happened.",
			wantCategory: model.CategoryAccountAccess,
			wantPriority: model.PriorityMedium,
			wantConf:     0.33,
			wantKeywords: []string{"login"},
		},
		{
			name:         "urgent outweighs high",
			subject:      "Production down",
			description:  "This is critical and blocking our team.",
			wantCategory: model.CategoryOther,
			wantPriority: model.PriorityUrgent,
			wantConf:     1,
			wantKeywords: []string{"critical", "production down"},
		},
		{
			name:         "low priority keywords",
			subject:      "Minor cosmetic issue",
			description:  "The button color is slightly off on the settings page.",
			wantCategory: model.CategoryOther,
			wantPriority: model.PriorityLow,
			wantConf:     0.53,
			wantKeywords: []string{"minor", "cosmetic"},
		},
		{
			name:         "phrase shared by category and priority is reported twice",
			subject:      "Suggestion",
			description:  "A suggestion to improve the dashboard layout.",
			wantCategory: model.CategoryFeatureRequest,
			wantPriority: model.PriorityLow,
			wantConf:     0.93,
			wantKeywords: []string{"suggestion", "improve", "suggestion"},
		},
		{
			name:         "longer phrase scores in its own tier",
			subject:      "Need this ASAP now",
			description:  "Please get back to me.",
			wantCategory: model.CategoryOther,
			wantPriority: model.PriorityUrgent,
			wantConf:     0.67,
			wantKeywords: []string{"asap now"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := engine.Classify(tc.subject, tc.description)
			assert.Equal(t, tc.wantCategory, got.Category)
			assert.Equal(t, tc.wantPriority, got.Priority)
			assert.InDelta(t, tc.wantConf, got.Confidence, 1e-9)
			assert.Equal(t, tc.wantKeywords, got.KeywordsFound)
		})
	}
}

func TestEngine_Reasoning(t *testing.T) {
	engine := classifier.NewEngine()

	got := engine.Classify("Production down", "This is critical and blocking our team.")
	assert.Equal(t, "Detected keywords: 'critical', 'production down'", got.Reasoning)

	got = engine.Classify("Hello there", "Just saying hi to the team today.")
	assert.Equal(t, "No specific keywords detected, using defaults", got.Reasoning)
}

func TestEngine_CaseInsensitive(t *testing.T) {
	engine := classifier.NewEngine()
	subject := "Refund for duplicate charge"
	description := "I was charged twice, this is urgent, please refund immediately."

	base := engine.Classify(subject, description)
	upper := engine.Classify(strings.ToUpper(subject), strings.ToUpper(description))
	mixed := engine.Classify("rEfUnD FOR duplicate CHARGE", "I was CHARGED twice, this is URGENT, please Refund Immediately.")

	assert.Equal(t, base, upper)
	assert.Equal(t, base, mixed)
	assert.Equal(t, base, engine.Classify(subject, description))
	assert.Equal(t, model.CategoryBillingQuestion, base.Category)
	assert.Equal(t, model.PriorityUrgent, base.Priority)
}

type countingRecorder struct {
	calls []model.Category
}

func (r *countingRecorder) RecordClassification(c model.Category, _ model.Priority) {
	r.calls = append(r.calls, c)
}

func TestEngine_CustomRulesAndRecorder(t *testing.T) {
	rec := &countingRecorder{}
	engine := classifier.NewEngine(
		classifier.WithRules(
			[]classifier.CategoryRule{{Category: model.CategoryBugReport, Keywords: []string{"Glitch"}}},
			[]classifier.PriorityRule{{Priority: model.PriorityHigh, Weight: classifier.HighWeight, Keywords: []string{"today"}}},
		),
		classifier.WithRecorder(rec),
	)

	got := engine.Classify("Weird glitch", "It started today after the update.")
	assert.Equal(t, model.CategoryBugReport, got.Category)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.InDelta(t, 0.83, got.Confidence, 1e-9)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, model.CategoryBugReport, rec.calls[0])
}
