package heading

import (
	"regexp"
	"strings"

	"github.com/dgallion1/docline/internal/outline"
)

var bulletPrefix = regexp.MustCompile(`^[•·▪▫◦‣⁃*-]\s*`)

// CleanBullet strips a leading bullet marker so bulleted and bare forms
// of the same text collide during de-duplication.
func CleanBullet(text string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(text, ""))
}

// Repair enforces the depth invariant on an ordered heading sequence:
// rank may grow by at most one step between consecutive headings. Deep
// jumps are demoted in place; nothing is deleted or reordered.
func Repair(headings []outline.Heading) []outline.Heading {
	last := 0
	for i := range headings {
		rank := headings[i].Level.Rank()
		if rank > last+1 {
			rank = last + 1
			if rank > 3 {
				rank = 3
			}
			headings[i].Level = outline.ForRank(rank)
		}
		last = rank
	}
	return headings
}
