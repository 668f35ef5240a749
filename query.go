package storyscout

// DefaultBootstrap is the default number of candidates accepted regardless
// of engagement thresholds at the start of a discovery pass.
const DefaultBootstrap = 5

// DiscoveryQuery describes a single discovery request against a source.
// Exactly one of Category and Tag should be set for the fiction site;
// Subreddit addresses the forum source.
type DiscoveryQuery struct {
	Category string `json:"category"`
	Tag      string `json:"tag"`

	Subreddit  string `json:"subreddit"`
	TimeFilter string `json:"timeFilter"` // day, week, month, year, all

	Limit    int    `json:"limit"`
	Language string `json:"language"`

	Acceptance AcceptancePolicy `json:"acceptance"`
}

// Validate returns an error if the query cannot be executed.
func (q *DiscoveryQuery) Validate() error {
	if q.Limit <= 0 {
		return Errorf(EINVALID, "limit must be positive")
	}
	if q.Category != "" && q.Tag != "" {
		return Errorf(EINVALID, "specify either a category or a tag, not both")
	}
	if q.Category == "" && q.Tag == "" && q.Subreddit == "" {
		return Errorf(EINVALID, "a category, tag or subreddit is required")
	}
	return nil
}

// AcceptancePolicy decides whether an extracted candidate enters the result
// set. A candidate is accepted when it clears at least one engagement floor,
// OR while fewer than Bootstrap records have been accepted for the query.
// MinParts is a structural floor, not an engagement one: outside the
// bootstrap window a candidate with fewer parts is rejected regardless of
// engagement.
//
// The bootstrap window is deliberate: counter-parsing accuracy varies per
// page template, and an overly strict early filter could zero out results
// before the extractor's accuracy on the current layout is known. Set
// Bootstrap to 0 to disable the relaxation.
type AcceptancePolicy struct {
	MinReads    int `json:"minReads"`
	MinVotes    int `json:"minVotes"`
	MinParts    int `json:"minParts"`
	MinScore    int `json:"minScore"`    // forum source: minimum post score
	MinComments int `json:"minComments"` // forum source: minimum comment count
	Bootstrap   int `json:"bootstrap"`
}

// Accept reports whether a candidate passes the policy given how many
// records have already been accepted for the current query.
func (p AcceptancePolicy) Accept(s *Story, accepted int) bool {
	if accepted < p.Bootstrap {
		return true
	}
	if s.Parts < p.MinParts {
		return false
	}
	return s.Reads >= p.MinReads || s.Votes >= p.MinVotes
}
