package storyscout

// StoryPatch carries fields recovered from a story's detail page. Zero
// values mean "not recovered"; Apply never overwrites a non-empty story
// field with an empty patch value, so merging is monotonic and applying
// the same patch twice is equivalent to applying it once.
type StoryPatch struct {
	Description    string
	Tags           []string
	Completed      bool
	Mature         bool
	LastUpdated    string
	FirstPublished string
	ContentSample  string
}

// IsZero reports whether the patch carries no recovered data.
func (p *StoryPatch) IsZero() bool {
	return p.Description == "" &&
		len(p.Tags) == 0 &&
		!p.Completed &&
		!p.Mature &&
		p.LastUpdated == "" &&
		p.FirstPublished == "" &&
		p.ContentSample == ""
}

// Apply merges the patch into the story.
//
// Description and Tags favor the more complete variant: the detail page
// usually carries the fuller value, so they are replaced whenever the patch
// version is longer than what the listing card produced. All other fields
// fill only gaps. Completed and Mature are only ever raised to true, never
// lowered, since flags are set on positive evidence alone.
func (p *StoryPatch) Apply(s *Story) {
	if len(p.Description) > len(s.Description) {
		s.Description = p.Description
	}
	if len(p.Tags) > len(s.Tags) {
		s.Tags = append([]string(nil), p.Tags...)
	}
	if p.Completed {
		s.Completed = true
	}
	if p.Mature {
		s.Mature = true
	}
	if s.LastUpdated == "" {
		s.LastUpdated = p.LastUpdated
	}
	if s.FirstPublished == "" {
		s.FirstPublished = p.FirstPublished
	}
	if s.ContentSample == "" {
		s.ContentSample = p.ContentSample
	}
}
