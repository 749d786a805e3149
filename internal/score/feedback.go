package score

import (
	"fmt"
	"sort"
)

// Feedback is the human-readable side of a score: rule-based, no cleverness.
type Feedback struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Tips       []string `json:"tips"`
}

// Summarize derives strengths, weaknesses and tips from a score breakdown.
func Summarize(res *Result) Feedback {
	fb := Feedback{}
	if res == nil {
		return fb
	}
	for _, c := range sortedCategories(res) {
		switch {
		case c.SubScore >= 85:
			fb.Strengths = append(fb.Strengths, fmt.Sprintf("%s: %s (target %s)", c.Name, c.Value, c.Target))
		case c.SubScore <= 50:
			fb.Weaknesses = append(fb.Weaknesses, fmt.Sprintf("%s: %s (target %s)", c.Name, c.Value, c.Target))
			fb.Tips = append(fb.Tips, c.Tip)
		}
	}
	return fb
}

// Compare lines up two results category by category for a head-to-head
// summary; positive lines mean mine beat theirs.
func Compare(mine, theirs *Result) []string {
	if mine == nil || theirs == nil {
		return nil
	}
	var lines []string
	for _, c := range sortedCategories(mine) {
		other, ok := theirs.Categories[c.ID]
		if !ok {
			continue
		}
		diff := c.SubScore - other.SubScore
		switch {
		case diff >= 15:
			lines = append(lines, fmt.Sprintf("You lead on %s (%.0f vs %.0f)", c.Name, c.SubScore, other.SubScore))
		case diff <= -15:
			lines = append(lines, fmt.Sprintf("They lead on %s (%.0f vs %.0f)", other.Name, c.SubScore, other.SubScore))
		}
	}
	lines = append(lines, fmt.Sprintf("Overall: %d (%s) vs %d (%s)", mine.Overall, mine.Grade, theirs.Overall, theirs.Grade))
	return lines
}

// sortedCategories gives a stable order for output; maps don't.
func sortedCategories(res *Result) []Category {
	out := make([]Category, 0, len(res.Categories))
	for _, c := range res.Categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].ID < out[j].ID
	})
	return out
}
