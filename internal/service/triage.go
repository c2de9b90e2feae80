package service

import (
	"strings"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
)

// Keyword lists tuned for campus facility and IT complaints. Matching
// is case-insensitive over the combined title and description.
var (
	urgentKeywords = []string{
		"urgent", "emergency", "critical", "immediate", "danger", "hazard",
		"life threatening", "severe", "accident", "injury", "fire", "electrical",
		"leaking", "flooding", "safety", "security breach",
	}
	highKeywords = []string{
		"serious", "major", "important", "significant", "broken", "not working",
		"completely", "totally", "entire", "widespread", "cant access",
		"locked out", "no water", "no power",
	}
	lowKeywords = []string{
		"minor", "small", "slight", "cosmetic", "aesthetic", "suggestion",
		"would be nice", "could improve", "enhancement", "request",
	}
)

// TriagePriority assigns a priority from complaint wording. The result
// is advisory ordering information for staff, never a gate on intake.
func TriagePriority(title, description string) models.ComplaintPriority {
	text := strings.ToLower(title + " " + description)

	urgentCount := countMatches(text, urgentKeywords)
	highCount := countMatches(text, highKeywords)
	lowCount := countMatches(text, lowKeywords)

	switch {
	case urgentCount >= 2 || strings.Contains(text, "urgent") || strings.Contains(text, "emergency"):
		return models.PriorityUrgent
	case urgentCount >= 1 || highCount >= 2:
		return models.PriorityHigh
	case lowCount >= 1:
		return models.PriorityLow
	default:
		return models.PriorityMedium
	}
}

func countMatches(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			count++
		}
	}
	return count
}
