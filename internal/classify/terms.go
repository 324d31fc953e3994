package classify

// Tier awards Points once a category matches at least MinMatches distinct
// terms. Tiers are evaluated highest MinMatches first.
type Tier struct {
	MinMatches int
	Points     int
}

// TermCategory is one weighted term list of the scoring model.
type TermCategory struct {
	Terms []string
	Tiers []Tier
}

// Model is the full scoring model: an auto-accept phrase list, three weighted
// term categories, and the fixed bonus rules. All matching is case-insensitive
// substring containment, so the model stays a pure function of its input text.
type Model struct {
	// AutoAccept short-circuits scoring entirely. These phrases are
	// unambiguous request-for-quotation language that must never be
	// filtered out by an unlucky score.
	AutoAccept []string

	Strong  TermCategory // commercial-request language
	Domain  TermCategory // MEP subject-matter vocabulary
	Context TermCategory // facility/project vocabulary

	RequestPhrases []string
	CurrencyTokens []string
	UrgencyTokens  []string

	SubjectStrongBonus int
	RequestBonus       int
	CurrencyBonus      int
	UrgencyBonus       int

	AcceptThreshold int
}

// DefaultModel returns the scoring model tuned for inbound MEP
// request-for-quotation mail.
func DefaultModel() Model {
	return Model{
		AutoAccept: []string{
			"request for quotation",
			"request for quote",
			"rfq",
			"please quote",
			"kindly quote",
			"request your best price",
		},
		Strong: TermCategory{
			Terms: []string{
				"quotation", "quote", "pricing", "price list", "proposal",
				"estimate", "tender", "inquiry", "enquiry",
			},
			Tiers: []Tier{{MinMatches: 2, Points: 3}, {MinMatches: 1, Points: 2}},
		},
		Domain: TermCategory{
			Terms: []string{
				"mep", "mechanical", "electrical", "plumbing", "hvac",
				"ventilation", "air conditioning", "chiller", "ductwork",
				"piping", "pump", "switchboard", "transformer", "lighting",
				"fire protection", "sprinkler", "sanitary", "drainage",
			},
			Tiers: []Tier{{MinMatches: 2, Points: 2}, {MinMatches: 1, Points: 1}},
		},
		Context: TermCategory{
			Terms: []string{
				"project", "site", "building", "installation", "construction",
				"facility", "factory", "warehouse", "renovation", "fit-out",
				"floor plan", "specification", "bill of quantities", "boq",
			},
			Tiers: []Tier{{MinMatches: 2, Points: 2}, {MinMatches: 1, Points: 1}},
		},
		RequestPhrases: []string{
			"please send", "please provide", "kindly send", "kindly provide",
			"we would like", "we need", "we require", "looking for",
		},
		CurrencyTokens: []string{
			"$", "usd", "eur", "gbp", "thb", "baht", "budget",
		},
		UrgencyTokens: []string{
			"urgent", "asap", "as soon as possible", "deadline", "time-sensitive",
		},
		SubjectStrongBonus: 2,
		RequestBonus:       1,
		CurrencyBonus:      1,
		UrgencyBonus:       1,
		AcceptThreshold:    3,
	}
}
