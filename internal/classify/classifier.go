// Package classify scores email text for commercial relevance with a
// deterministic, explainable heuristic. Classification is a pure function of
// the input text: identical input always yields identical output.
package classify

import "strings"

// ComponentScores breaks a score down by contributing category so callers can
// explain why a message was accepted or rejected.
type ComponentScores struct {
	StrongTermCount  int `json:"strong_term_count"`
	DomainTermCount  int `json:"domain_term_count"`
	ContextTermCount int `json:"context_term_count"`
	BonusPoints      int `json:"bonus_points"`
}

// Result is the outcome of classifying one message.
type Result struct {
	Accepted   bool            `json:"accepted"`
	TotalScore int             `json:"total_score"`
	Components ComponentScores `json:"components"`
}

// Classifier applies a scoring Model. It holds no mutable state and is safe
// for concurrent use.
type Classifier struct {
	model Model
}

// New returns a classifier using the default MEP scoring model.
func New() *Classifier {
	return NewWithModel(DefaultModel())
}

// NewWithModel returns a classifier scoring against a custom model.
func NewWithModel(m Model) *Classifier {
	return &Classifier{model: m}
}

// Classify scores text plus subject. The auto-accept tier is checked first;
// otherwise the weighted categories and bonus rules are summed and compared
// against the model threshold.
func (c *Classifier) Classify(text, subject string) Result {
	combined := strings.ToLower(subject + "\n" + text)
	lowerSubject := strings.ToLower(subject)

	for _, phrase := range c.model.AutoAccept {
		if strings.Contains(combined, phrase) {
			return Result{Accepted: true, TotalScore: c.model.AcceptThreshold}
		}
	}

	components := ComponentScores{
		StrongTermCount:  countMatches(combined, c.model.Strong.Terms),
		DomainTermCount:  countMatches(combined, c.model.Domain.Terms),
		ContextTermCount: countMatches(combined, c.model.Context.Terms),
	}

	total := tierPoints(c.model.Strong.Tiers, components.StrongTermCount) +
		tierPoints(c.model.Domain.Tiers, components.DomainTermCount) +
		tierPoints(c.model.Context.Tiers, components.ContextTermCount)

	if countMatches(lowerSubject, c.model.Strong.Terms) > 0 {
		components.BonusPoints += c.model.SubjectStrongBonus
	}
	if anyMatch(combined, c.model.RequestPhrases) {
		components.BonusPoints += c.model.RequestBonus
	}
	if anyMatch(combined, c.model.CurrencyTokens) {
		components.BonusPoints += c.model.CurrencyBonus
	}
	if anyMatch(combined, c.model.UrgencyTokens) {
		components.BonusPoints += c.model.UrgencyBonus
	}

	total += components.BonusPoints

	return Result{
		Accepted:   total >= c.model.AcceptThreshold,
		TotalScore: total,
		Components: components,
	}
}

// countMatches counts how many distinct terms occur in the lowercased text.
func countMatches(lowerText string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lowerText, term) {
			count++
		}
	}
	return count
}

func anyMatch(lowerText string, terms []string) bool {
	return countMatches(lowerText, terms) > 0
}

// tierPoints returns the points of the highest tier satisfied by matches.
func tierPoints(tiers []Tier, matches int) int {
	best := 0
	bestMin := -1
	for _, tier := range tiers {
		if matches >= tier.MinMatches && tier.MinMatches > bestMin {
			best = tier.Points
			bestMin = tier.MinMatches
		}
	}
	return best
}
