package discovery

// SearchStrategy is one fixed provider query plus its precedence. Lower
// priority value means higher precedence. Strategies are defined at build
// time and never mutated.
type SearchStrategy struct {
	Name            string
	QueryExpression string
	Priority        int
}

// DefaultStrategies returns the fixed query set, most specific first.
func DefaultStrategies() []SearchStrategy {
	return []SearchStrategy{
		{
			Name:            "explicit_rfq",
			QueryExpression: `subject:("request for quotation" OR "request for quote" OR RFQ)`,
			Priority:        1,
		},
		{
			Name:            "quote_subject",
			QueryExpression: `subject:(quotation OR quote OR proposal OR estimate OR tender)`,
			Priority:        2,
		},
		{
			Name:            "mep_commercial",
			QueryExpression: `(MEP OR HVAC OR electrical OR plumbing OR chiller OR switchboard) (quotation OR quote OR price)`,
			Priority:        3,
		},
		{
			Name:            "project_inquiry",
			QueryExpression: `(project OR site OR installation) (inquiry OR enquiry OR "price list")`,
			Priority:        4,
		},
	}
}

// fallbackStrategy is the recall backstop run after the fixed strategies:
// anything recent that loosely looks like a commercial inquiry, tagged with
// the lowest precedence so it never displaces a fixed-strategy hit.
func fallbackStrategy(fixed []SearchStrategy) SearchStrategy {
	lowest := 0
	for _, s := range fixed {
		if s.Priority > lowest {
			lowest = s.Priority
		}
	}
	return SearchStrategy{
		Name:            "recent_broad",
		QueryExpression: `newer_than:30d (quotation OR quote OR inquiry OR enquiry OR proposal OR pricing)`,
		Priority:        lowest + 1,
	}
}
