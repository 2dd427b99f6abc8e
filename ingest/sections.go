package ingest

import (
	"regexp"
	"strings"
)

// Priority classifies how critical a document section is for retrieval.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Section is one heading-delimited part of a source document.
type Section struct {
	Title        string
	Heading      string
	Body         string
	HeadingLevel int
	Priority     Priority
}

var headingPattern = regexp.MustCompile(`(?m)^#+\s`)

// SplitSections splits markdown text on heading boundaries. Text before the
// first heading (or text with no headings at all) becomes a level-0 section
// titled "Body". The heading line stays part of the section body.
func SplitSections(text string) []Section {
	bounds := headingPattern.FindAllStringIndex(text, -1)

	var parts []string
	prev := 0
	for _, b := range bounds {
		if b[0] > prev {
			parts = append(parts, text[prev:b[0]])
		}
		prev = b[0]
	}
	parts = append(parts, text[prev:])

	var out []Section
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		heading := "Body"
		level := 0
		if line, _, _ := strings.Cut(p, "\n"); strings.HasPrefix(line, "#") {
			level = len(line) - len(strings.TrimLeft(line, "#"))
			heading = strings.TrimSpace(strings.TrimLeft(line, "# "))
		}

		out = append(out, Section{
			Heading:      heading,
			Body:         p,
			HeadingLevel: level,
			Priority:     ClassifyPriority(heading),
		})
	}

	if len(out) == 0 {
		return []Section{{Heading: "Body", Body: text, Priority: PriorityLow}}
	}

	return out
}

var (
	highPriorityKeywords   = []string{"sla", "policy", "terms", "conditions", "refund", "warranty", "compliance"}
	mediumPriorityKeywords = []string{"guide", "catalog", "exclusions", "cut-off", "shipping", "delivery"}
)

// ClassifyPriority maps a heading title to a retrieval priority by
// case-insensitive substring match. The high-priority list is checked before
// the medium one; anything else is low.
func ClassifyPriority(heading string) Priority {
	if heading == "" {
		return PriorityLow
	}

	h := strings.ToLower(heading)
	for _, kw := range highPriorityKeywords {
		if strings.Contains(h, kw) {
			return PriorityHigh
		}
	}
	for _, kw := range mediumPriorityKeywords {
		if strings.Contains(h, kw) {
			return PriorityMedium
		}
	}

	return PriorityLow
}
