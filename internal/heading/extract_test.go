package heading

import (
	"reflect"
	"testing"

	"github.com/dgallion1/docline/internal/outline"
)

var proseLines = []string{
	"the work continued at a steady pace and the team stayed focused",
	"the draft went through review and the edits landed the same week",
	"the meeting ran long and the minutes went out a day late",
	"the budget line moved twice and the totals had to be redone",
	"the vendor call slipped and the follow up moved to friday",
	"the test plan grew and the fixtures needed another pass",
	"the launch date held and the checklist kept everyone honest",
	"the training data arrived and the labels needed a second look",
	"the rollout went smoothly and the pager stayed quiet all night",
}

func TestExtract_Empty(t *testing.T) {
	if got := Extract(nil, DefaultProfile()); len(got) != 0 {
		t.Errorf("expected no headings, got %d", len(got))
	}
}

func TestExtract_ChapterHeadingDetected(t *testing.T) {
	runs := []outline.TextRun{
		testRun("Chapter 2", 1, 12, false, 0),
		testRun("It feels like the journey of learning never really ends here", 1, 12, false, 20),
		testRun(proseLines[0], 1, 12, false, 40),
	}
	got := Extract(runs, DefaultProfile())

	want := []outline.Heading{{Level: outline.H1, Text: "Chapter 2", Page: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_FooterRejected(t *testing.T) {
	runs := []outline.TextRun{
		testRun("EXECUTIVE BRIEFING DOCUMENT", 1, 12, false, 0),
		testRun(proseLines[0], 1, 12, false, 20),
		testRun(proseLines[1], 1, 12, false, 40),
		{Text: "pg 4", FontSize: 12, LeftMargin: 300, TopPosition: 700, PageNum: 1, LineHeight: 14},
	}
	got := Extract(runs, DefaultProfile())

	if len(got) != 1 {
		t.Fatalf("expected 1 heading, got %d: %v", len(got), got)
	}
	if got[0].Text != "EXECUTIVE BRIEFING DOCUMENT" || got[0].Level != outline.H1 {
		t.Errorf("expected the uppercase title as H1, got %+v", got[0])
	}
}

func TestExtract_BulletAndBareFormsCollapse(t *testing.T) {
	runs := []outline.TextRun{
		testRun("• Key Findings", 1, 12, true, 0),
		testRun(proseLines[2], 1, 12, false, 14),
		testRun("Key Findings", 1, 12, true, 28),
		testRun(proseLines[3], 1, 12, false, 42),
	}
	got := Extract(runs, DefaultProfile())

	if len(got) != 1 {
		t.Fatalf("expected the bare form to be deduplicated, got %d headings: %v", len(got), got)
	}
	if got[0].Text != "• Key Findings" {
		t.Errorf("expected the first-seen bulleted form, got %q", got[0].Text)
	}
	if got[0].Level != outline.H1 {
		t.Errorf("expected the lone heading clamped to H1, got %s", got[0].Level)
	}
}

func TestExtract_SoloPageTitlePromoted(t *testing.T) {
	var runs []outline.TextRun
	for i, line := range proseLines {
		runs = append(runs, testRun(line, 1, 10, false, float64(i)*14))
	}
	runs = append(runs, testRun("Overview", 2, 18, true, 0))

	got := Extract(runs, DefaultProfile())

	want := []outline.Heading{{Level: outline.H1, Text: "Overview", Page: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_DepthJumpRepaired(t *testing.T) {
	runs := []outline.TextRun{
		testRun("EXECUTIVE BRIEFING DOCUMENT", 1, 12, false, 0),
		testRun("Setup Details:", 1, 12, false, 40),
	}
	got := Extract(runs, DefaultProfile())

	want := []outline.Heading{
		{Level: outline.H1, Text: "EXECUTIVE BRIEFING DOCUMENT", Page: 1},
		{Level: outline.H2, Text: "Setup Details:", Page: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestExtract_RankOrderResortsWithinPage(t *testing.T) {
	runs := []outline.TextRun{
		testRun("Setup Details:", 1, 12, false, 0),
		testRun("EXECUTIVE BRIEFING DOCUMENT", 1, 12, false, 40),
	}
	got := Extract(runs, DefaultProfile())

	if len(got) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(got))
	}
	if got[0].Text != "EXECUTIVE BRIEFING DOCUMENT" {
		t.Errorf("expected the H1 listed first within the page, got %q", got[0].Text)
	}
	if got[1].Text != "Setup Details:" || got[1].Level != outline.H2 {
		t.Errorf("expected the subsection demoted to H2 after it, got %+v", got[1])
	}
}

func TestExtract_RanksNeverJump(t *testing.T) {
	runs := []outline.TextRun{
		testRun("EXECUTIVE BRIEFING DOCUMENT", 1, 12, false, 0),
		testRun("Setup Details:", 2, 12, false, 0),
		testRun("Phase 2", 2, 12, false, 40),
		testRun("1.2 Methods", 3, 12, false, 0),
	}
	got := Extract(runs, DefaultProfile())

	want := []outline.Heading{
		{Level: outline.H1, Text: "EXECUTIVE BRIEFING DOCUMENT", Page: 1},
		{Level: outline.H2, Text: "Setup Details:", Page: 2},
		{Level: outline.H3, Text: "Phase 2", Page: 2},
		{Level: outline.H2, Text: "1.2 Methods", Page: 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	last := 0
	for i, h := range got {
		rank := h.Level.Rank()
		if rank > last+1 {
			t.Errorf("heading %d: rank %d jumps past %d", i, rank, last+1)
		}
		last = rank
	}
}

func TestExtract_Deterministic(t *testing.T) {
	runs := []outline.TextRun{
		testRun("EXECUTIVE BRIEFING DOCUMENT", 1, 12, false, 0),
		testRun("Setup Details:", 2, 12, false, 0),
		testRun("Phase 2", 2, 12, false, 40),
		testRun("1.2 Methods", 3, 12, false, 0),
	}
	first := Extract(runs, DefaultProfile())
	second := Extract(runs, DefaultProfile())
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %v and %v", first, second)
	}
}
