package outline

// Level identifies heading depth. Only three levels are modeled.
type Level string

const (
	H1 Level = "H1"
	H2 Level = "H2"
	H3 Level = "H3"
)

// Rank returns the numeric depth of a level: H1=1, H2=2, H3=3.
// Unknown levels rank deepest.
func (l Level) Rank() int {
	switch l {
	case H1:
		return 1
	case H2:
		return 2
	default:
		return 3
	}
}

// ForRank returns the level for a numeric depth, clamped to [1, 3].
func ForRank(rank int) Level {
	switch {
	case rank <= 1:
		return H1
	case rank == 2:
		return H2
	default:
		return H3
	}
}

// TextRun is one visually coherent line of text with style and position
// metadata, as delivered by a format adapter.
type TextRun struct {
	Text        string  `json:"text"`
	FontSize    float64 `json:"font_size"`    // > 0
	IsBold      bool    `json:"is_bold"`
	IsItalic    bool    `json:"is_italic"`
	LeftMargin  float64 `json:"left_margin"`  // offset of the leftmost glyph
	TopPosition float64 `json:"top_position"` // consistent within a page
	PageNum     int     `json:"page_num"`     // ≥ 1
	LineHeight  float64 `json:"line_height"`  // > 0
	FontName    string  `json:"font_name,omitempty"` // informational only
}

// Heading is one entry of an extracted outline.
type Heading struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Section pairs a heading with the body content that follows it, up to
// the next heading.
type Section struct {
	Level   Level  `json:"level"`
	Text    string `json:"text"`
	Page    int    `json:"page"`
	Content string `json:"content"`
}

// Document is the export shape: a title plus the ordered outline, and
// linked sections when they were requested.
type Document struct {
	Title    string    `json:"title"`
	Outline  []Heading `json:"outline"`
	Sections []Section `json:"sections,omitempty"`
}

// BuildDocument assembles the export shape. A nil outline becomes an
// empty list so consumers always see an array.
func BuildDocument(title string, headings []Heading) Document {
	if headings == nil {
		headings = []Heading{}
	}
	return Document{Title: title, Outline: headings}
}

// Source is what a format adapter produces: positioned runs for the
// detection engine, or a native outline when the format declares its
// heading structure directly. Title may be empty; callers fall back to
// the source filename.
type Source struct {
	Title   string
	Runs    []TextRun
	Outline []Heading
}
