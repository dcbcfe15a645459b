package heading

import (
	"regexp"
	"strings"
)

// Weights holds the tuned scoring constants of a profile. Bonuses add,
// penalties subtract, and Score clamps the sum to [0, 1].
type Weights struct {
	Bold        float64
	ItalicOnly  float64 // italic without bold is weak evidence
	SizeSlope   float64 // bonus per unit of font ratio above 1.0
	SizeCap     float64 // ceiling of the relative-size bonus
	ShortPhrase float64 // up to 6 words
	LongPhrase  float64 // 7 to 12 words
	Uppercase   float64 // fully uppercase, more than 8 chars
	TitleCase   float64 // title case, at least 2 words
	Capitalized float64 // leading capital, at least 2 words
	LeftAligned float64
	Isolated    float64
	Pattern     float64 // multiplier on the pattern score
	ColonTitle  float64 // ends with ':' and title case
	Numbered    float64 // numbered-outline shape
	Thematic    float64 // contains a thematic marker word
	ManyWords   float64 // more than 15 words
	Excluded    float64
	Prose       float64
	ShortText   float64 // fewer than 5 chars
}

// PartialRule grades a near-heading shape that matched no level pattern.
type PartialRule struct {
	Score float64
	Match func(text string) bool
}

// StrictGates are the hard acceptance gates of the strict profile.
// ExtractStrict consults them instead of the additive weight model.
type StrictGates struct {
	MaxRunes      int            // longest accepted text
	MaxWords      int            // most words in an accepted text
	SizeRatio     float64        // font above ratio×avg marks a heading
	H1SizeRatio   float64        // font above ratio×avg marks an H1
	BoldSizeRatio float64        // bold gate: font ratio floor
	BoldMaxMargin float64        // bold gate: left margin limit
	MaxHeadings   int            // cap per document, 0 = unlimited
	H1Keywords    *regexp.Regexp // level-pattern matches get H1 when this also matches
	RejectWords   []string       // lowercased substrings that reject a candidate outright
}

// Profile is the swappable data table driving scoring and classification:
// level patterns, exclusion and prose rules, partial-score rules, thematic
// word lists, weights, and thresholds. A profile is plain data and safe to
// share between goroutines once built.
type Profile struct {
	Name string

	// Level patterns, scanned H1 then H2 then H3; first match wins.
	H1 []*regexp.Regexp
	H2 []*regexp.Regexp
	H3 []*regexp.Regexp

	Exclusions []*regexp.Regexp // searched in the lowercased text
	Prose      []*regexp.Regexp // searched in the lowercased text
	Partials   []PartialRule

	BonusWords []string // thematic words the scorer rewards
	H1Words    []string // thematic words the classifier reads as H1 cues

	Weights  Weights
	MinScore float64 // acceptance floor for the fallback classification path
	MinRunes int     // trimmed texts shorter than this are skipped

	Strict *StrictGates // set only on the strict profile
}

// DefaultProfile is the hand-tuned general-document model: recall-leaning
// patterns and weights for narrative and report styles. Keyword patterns
// match case-insensitively; shape patterns (uppercase, title case,
// numbered) are case-sensitive so lowercase prose cannot satisfy them.
func DefaultProfile() *Profile {
	return &Profile{
		Name: "default",
		H1: compile(
			`(?i)^(Chapter|CHAPTER)\s+\d+`,
			`(?i)^(Abstract|Introduction|Conclusion|Summary|References|Bibliography)$`,
			`^[A-Z\s]{15,}$`,
			`(?i)^(Executive\s+Summary|Table\s+of\s+Contents)$`,
			`^\d+\.\s+[A-Z][A-Za-z\s]{10,}$`,
			`(?i)^(Welcome\s+to|The\s+Journey|Your\s+Mission|Why\s+This\s+Matters)$`,
			`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*\s+(Challenge|Mission|Journey|Matters)$`,
		),
		H2: compile(
			`^\d+\.\d+\s+[A-Z]`,
			`^[A-Z][A-Z\s]{8,20}$`,
			`(?i)^(Background|Methodology|Results|Discussion|Analysis|Implementation|Evaluation)$`,
			`(?i)^(Problem\s+Statement|Related\s+Work|Future\s+Work)$`,
			`(?i)^(What\s+You\s+Need|You\s+Will\s+Be|The\s+Journey\s+Ahead)$`,
			`^[A-Z][a-z]+(\s+[A-Z][a-z]+){2,4}$`,
		),
		H3: compile(
			`^\d+\.\d+\.\d+\s+[A-Z]`,
			`^[A-Z][a-z]+(\s+[A-Z][a-z]+)*:$`,
			`(?i)^(Phase|Step|Stage|Round)\s+\d+`,
			`^[a-z]+\)\s+[A-Z]`,
			`^•\s+[A-Z][a-z]+.*:$`,
		),
		Exclusions: compile(
			`^\d+$`,
			`^page\s+\d+`,
			`copyright|©|confidential`,
			`^(see|refer|figure|table|note)\s+`,
			`\.com|\.org|\.net|@`,
			`^\w{1,2}$`,
			`^(and|or|but|the|a|an|in|on|at|by|for|with|from|to|of|is|are|was|were)\s+`,
			`(experience|like|feels|seems|appears|building|creating|using|making)`,
			`(up\s+to\s+\d+|more\s+than|less\s+than)`,
			`(you're|we're|it's|that's|don't|won't)`,
		),
		Prose: compile(
			`(experience|like|feels|seems|appears)`,
			`(building|creating|using|making|developing)`,
			`(you|your|we|our|they|their)`,
			`(will|would|could|should|must|can)`,
			`(this|that|these|those|it)`,
			`\?`,
			`(and|or|but)\s+\w+\s+(and|or|but)`,
		),
		Partials:   defaultPartials(),
		BonusWords: []string{"Mission", "Journey", "Challenge", "Matters", "Welcome"},
		H1Words:    []string{"Mission", "Journey", "Challenge", "Welcome"},
		Weights:    defaultWeights(),
		MinScore:   0.35,
		MinRunes:   3,
	}
}

// StrictProfile is the high-precision variant tuned for travel and tourism
// collections: a short semantic pattern list, aggressive exclusions, hard
// typographic gates, and a per-document cap. Strict patterns default to H2;
// Strict.H1Keywords promotes the section names that open a document.
func StrictProfile() *Profile {
	return &Profile{
		Name: "strict",
		H2: compile(
			`(?i)^(Introduction|Conclusion|Summary|Guide|Tips)$`,
			`(?i)^[A-Z][a-z]+(\s+[A-Z][a-z]+){1,3}$`,
			`(?i)^(Activities|Things|Places|Hotels|Restaurants|History|Culture)$`,
		),
		Exclusions: compile(
			`^(and|or|but|the|a|an|in|on|at|by|for|with|from|to|of)\s+`,
			`^(this|that|these|those|it|they|we|you|are|is|was|were)\s+`,
			`[.!?]$`,
			`(visit|explore|discover|enjoy|experience|located|situated|offers|provides|features|includes)`,
			`^(one|some|many|several|various|day|night|morning|afternoon|evening)\s+`,
			`(market|museum|restaurant|hotel|city|region)\s+(explores|showcases|features)`,
			`(perfect|ideal|best|great|wonderful|beautiful|stunning)`,
		),
		Weights:  defaultWeights(),
		MinScore: 0.35,
		MinRunes: 5,
		Strict: &StrictGates{
			MaxRunes:      50,
			MaxWords:      5,
			SizeRatio:     1.4,
			H1SizeRatio:   1.7,
			BoldSizeRatio: 1.2,
			BoldMaxMargin: 30,
			MaxHeadings:   8,
			H1Keywords:    regexp.MustCompile(`(?i)^(Introduction|Conclusion|Guide)`),
			RejectWords:   []string{"visit", "explore", "located", "offers"},
		},
	}
}

// ProfileByName returns the named profile, defaulting to DefaultProfile
// for unrecognized names.
func ProfileByName(name string) *Profile {
	if strings.EqualFold(name, "strict") {
		return StrictProfile()
	}
	return DefaultProfile()
}

func defaultWeights() Weights {
	return Weights{
		Bold:        0.2,
		ItalicOnly:  0.05,
		SizeSlope:   0.1,
		SizeCap:     0.15,
		ShortPhrase: 0.15,
		LongPhrase:  0.1,
		Uppercase:   0.1,
		TitleCase:   0.08,
		Capitalized: 0.05,
		LeftAligned: 0.1,
		Isolated:    0.1,
		Pattern:     0.15,
		ColonTitle:  0.1,
		Numbered:    0.15,
		Thematic:    0.1,
		ManyWords:   0.3,
		Excluded:    0.4,
		Prose:       0.3,
		ShortText:   0.2,
	}
}

// defaultPartials grades near-heading shapes in the original tuning order.
func defaultPartials() []PartialRule {
	return []PartialRule{
		{Score: 0.9, Match: func(t string) bool { return numberedOutline.MatchString(t) }},
		{Score: 0.7, Match: func(t string) bool {
			return strings.HasSuffix(t, ":") && isTitleCase(t) && len(strings.Fields(t)) >= 2
		}},
		{Score: 0.8, Match: func(t string) bool { return longUppercase.MatchString(t) && runeLen(t) > 8 }},
		{Score: 0.6, Match: func(t string) bool { return shortTitlePhrase.MatchString(t) }},
		{Score: 0.5, Match: func(t string) bool { return strings.HasPrefix(t, "•") && strings.Contains(t, ":") }},
	}
}

func compile(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(p))
	}
	return res
}
