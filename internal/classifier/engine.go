// Package classifier infers a ticket's category and priority from keywords in
// its subject and description.
package classifier

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"github.com/rs/zerolog"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// Recorder receives one call per classification. metrics.Metrics implements it.
type Recorder interface {
	RecordClassification(category model.Category, priority model.Priority)
}

// keywordSet is one rule's phrases with a prebuilt automaton.
type keywordSet struct {
	keywords []string
	matcher  *ahocorasick.Matcher
}

func newKeywordSet(keywords []string) keywordSet {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}
	ks := keywordSet{keywords: lowered}
	if len(lowered) > 0 {
		ks.matcher = ahocorasick.NewStringMatcher(lowered)
	}
	return ks
}

// match returns the phrases found in text, in keyword-list order.
func (ks keywordSet) match(text []byte) []string {
	if ks.matcher == nil {
		return nil
	}
	hits := ks.matcher.Match(text)
	if len(hits) == 0 {
		return nil
	}
	sort.Ints(hits)
	out := make([]string, 0, len(hits))
	for _, idx := range hits {
		if idx < len(ks.keywords) {
			out = append(out, ks.keywords[idx])
		}
	}
	return out
}

type categoryEntry struct {
	category model.Category
	set      keywordSet
}

type priorityEntry struct {
	priority model.Priority
	weight   float64
	set      keywordSet
}

// Engine scores text against ordered category and priority rules.
// The Aho-Corasick matchers keep per-match state, so Classify holds mu.
type Engine struct {
	mu         sync.Mutex
	categories []categoryEntry
	priorities []priorityEntry
	logger     zerolog.Logger
	recorder   Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default keyword tables.
func WithRules(categories []CategoryRule, priorities []PriorityRule) Option {
	return func(e *Engine) {
		e.setRules(categories, priorities)
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine builds the automatons for the default rules unless WithRules is given.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{logger: zerolog.Nop()}
	e.setRules(DefaultCategoryRules(), DefaultPriorityRules())
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) setRules(categories []CategoryRule, priorities []PriorityRule) {
	e.categories = make([]categoryEntry, 0, len(categories))
	for _, r := range categories {
		e.categories = append(e.categories, categoryEntry{category: r.Category, set: newKeywordSet(r.Keywords)})
	}
	e.priorities = make([]priorityEntry, 0, len(priorities))
	for _, r := range priorities {
		e.priorities = append(e.priorities, priorityEntry{priority: r.Priority, weight: r.Weight, set: newKeywordSet(r.Keywords)})
	}
}

// Classify scores subject and description. Matching is case-insensitive and
// the result depends only on the text.
func (e *Engine) Classify(subject, description string) model.Classification {
	text := []byte(strings.ToLower(subject + " " + description))

	e.mu.Lock()
	category, categoryScore, categoryHits := e.bestCategory(text)
	priority, priorityScore, priorityHits := e.bestPriority(text)
	e.mu.Unlock()

	keywords := make([]string, 0, len(categoryHits)+len(priorityHits))
	keywords = append(keywords, categoryHits...)
	keywords = append(keywords, priorityHits...)

	confidence := math.Min((categoryScore+priorityScore)/maxCombinedWeight, 1.0)
	result := model.Classification{
		Category:      category,
		Priority:      priority,
		Confidence:    math.Round(confidence*100) / 100,
		Reasoning:     reasoning(keywords),
		KeywordsFound: keywords,
	}

	e.logger.Debug().
		Str("category", string(result.Category)).
		Str("priority", string(result.Priority)).
		Float64("confidence", result.Confidence).
		Int("keywords_count", len(keywords)).
		Msg("ticket classified")
	if e.recorder != nil {
		e.recorder.RecordClassification(result.Category, result.Priority)
	}
	return result
}

// bestCategory keeps the first rule reaching the maximum; only a strictly
// greater score replaces it.
func (e *Engine) bestCategory(text []byte) (model.Category, float64, []string) {
	best := model.CategoryOther
	bestScore := 0.0
	var bestHits []string
	for _, c := range e.categories {
		hits := c.set.match(text)
		score := float64(len(hits)) * CategoryWeight
		if score > bestScore {
			best, bestScore, bestHits = c.category, score, hits
		}
	}
	return best, bestScore, bestHits
}

func (e *Engine) bestPriority(text []byte) (model.Priority, float64, []string) {
	best := model.PriorityMedium
	bestScore := 0.0
	var bestHits []string
	for _, p := range e.priorities {
		hits := p.set.match(text)
		score := float64(len(hits)) * p.weight
		if score > bestScore {
			best, bestScore, bestHits = p.priority, score, hits
		}
	}
	return best, bestScore, bestHits
}

func reasoning(keywords []string) string {
	if len(keywords) == 0 {
		return "No specific keywords detected, using defaults"
	}
	quoted := make([]string, len(keywords))
	for i, kw := range keywords {
		quoted[i] = fmt.Sprintf("'%s'", kw)
	}
	return "Detected keywords: " + strings.Join(quoted, ", ")
}
