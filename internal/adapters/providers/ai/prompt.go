package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/providers"
)

// synthesisResponse is the JSON contract the model is asked to follow.
type synthesisResponse struct {
	Answer     string   `json:"answer"`
	Confidence float64  `json:"confidence"`
	Actions    []string `json:"actions"`
}

// buildPrompt assembles the grounded synthesis prompt. Passages are
// numbered so the model can only answer from what retrieval surfaced;
// when nothing was retrieved the model is told to admit it.
func buildPrompt(input providers.SynthesisInput) string {
	var b strings.Builder

	b.WriteString("You are an agricultural advisor for smallholder farmers in India.\n")
	b.WriteString("Answer the question using ONLY the context passages below.\n")
	b.WriteString("If the passages do not contain the answer, set answer to exactly:\n")
	b.WriteString(entities.SentinelAnswer + "\n\n")

	if len(input.Docs) == 0 {
		b.WriteString("Context: (no passages retrieved)\n\n")
	} else {
		b.WriteString("Context:\n")
		for i, doc := range input.Docs {
			fmt.Fprintf(&b, "[DOC%d] %s\n%s\n\n", i+1, doc.Title, doc.Content)
		}
	}

	fmt.Fprintf(&b, "Question: %s\n\n", input.Question)
	b.WriteString("Respond with a single JSON object and nothing else:\n")
	b.WriteString(`{"answer": "...", "confidence": 0.0, "actions": ["...", "..."]}` + "\n")
	b.WriteString("confidence is your own estimate in [0,1]. actions are 2-4 concrete next steps.\n")

	return b.String()
}

// parseSynthesis extracts the structured answer from raw model output.
// Models routinely wrap JSON in markdown fences or preamble text, so the
// parser hunts for the outermost object before unmarshalling.
func parseSynthesis(raw string) (*synthesisResponse, error) {
	extracted := extractJSON(raw)
	if extracted == "" {
		return nil, errors.New("no JSON object in model output")
	}

	var resp synthesisResponse
	if err := json.Unmarshal([]byte(extracted), &resp); err != nil {
		return nil, fmt.Errorf("malformed synthesis JSON: %w", err)
	}

	if strings.TrimSpace(resp.Answer) == "" {
		return nil, errors.New("synthesis answer is empty")
	}
	if resp.Confidence < 0 || resp.Confidence > 1 {
		return nil, fmt.Errorf("synthesis confidence out of range: %f", resp.Confidence)
	}

	return &resp, nil
}

// extractJSON returns the first top-level JSON object in s, or "".
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}

	return ""
}

// resultFromSynthesis converts a parsed model response into a query
// result, citing the retrieved passages it was grounded on.
func resultFromSynthesis(resp *synthesisResponse, input providers.SynthesisInput) *entities.QueryResult {
	sources := make([]entities.Source, 0, len(input.Docs))
	ids := make([]string, 0, len(input.Docs))
	for i := range input.Docs {
		sources = append(sources, input.Docs[i].Source())
		ids = append(ids, input.Docs[i].ID)
	}

	return &entities.QueryResult{
		Answer:     resp.Answer,
		Confidence: resp.Confidence,
		Actions:    resp.Actions,
		Sources:    sources,
		Meta: entities.QueryMeta{
			Agent:        input.Agent,
			Fallback:     false,
			RetrievedIDs: ids,
		},
	}
}
