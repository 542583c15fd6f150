package services

import (
	"strings"

	"github.com/farmguru/backend/internal/domain/entities"
)

// Keyword vocabularies for agent routing, checked in priority order.
var (
	weatherKeywords  = []string{"weather", "rain", "forecast", "temperature"}
	marketKeywords   = []string{"price", "market", "sell", "buy", "mandi"}
	policyKeywords   = []string{"scheme", "policy", "pmkisan", "pmfby", "insurance"}
	advisoryKeywords = []string{"pest", "disease", "chemical", "pesticide", "treatment"}
)

// RouteAgent picks the advisory domain for a question by keyword match.
// Questions carrying an inline image caption route to the vision agent
// only when no domain vocabulary matched first.
func RouteAgent(text string) entities.Agent {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, weatherKeywords):
		return entities.AgentWeather
	case containsAny(lower, marketKeywords):
		return entities.AgentMarket
	case containsAny(lower, policyKeywords):
		return entities.AgentPolicy
	case containsAny(lower, advisoryKeywords):
		return entities.AgentAdvisory
	case strings.Contains(lower, "image shows:"):
		return entities.AgentVision
	default:
		return entities.AgentGeneral
	}
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
