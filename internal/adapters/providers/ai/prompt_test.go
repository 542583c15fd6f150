package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmguru/backend/internal/domain/entities"
	"github.com/farmguru/backend/internal/domain/providers"
)

func sampleInput() providers.SynthesisInput {
	return providers.SynthesisInput{
		Question: "How do I control aphids on cotton?",
		Agent:    entities.AgentAdvisory,
		Docs: []entities.RetrievedDoc{
			{
				Document: entities.Document{
					ID:      "doc-1",
					Title:   "Aphid management",
					Content: "Spray neem oil at 5ml per litre in the evening.",
				},
				Similarity: 0.82,
			},
		},
	}
}

func TestBuildPromptIncludesPassagesAndQuestion(t *testing.T) {
	prompt := buildPrompt(sampleInput())

	assert.Contains(t, prompt, "[DOC1] Aphid management")
	assert.Contains(t, prompt, "Spray neem oil")
	assert.Contains(t, prompt, "How do I control aphids on cotton?")
	assert.Contains(t, prompt, entities.SentinelAnswer)
}

func TestBuildPromptEmptyRetrieval(t *testing.T) {
	input := sampleInput()
	input.Docs = nil

	prompt := buildPrompt(input)
	assert.Contains(t, prompt, "no passages retrieved")
}

func TestParseSynthesis(t *testing.T) {
	resp, err := parseSynthesis(`{"answer": "Spray neem oil.", "confidence": 0.8, "actions": ["Spray in the evening", "Recheck after 3 days"]}`)
	require.NoError(t, err)
	assert.Equal(t, "Spray neem oil.", resp.Answer)
	assert.Equal(t, 0.8, resp.Confidence)
	assert.Len(t, resp.Actions, 2)
}

func TestParseSynthesisFencedOutput(t *testing.T) {
	raw := "```json\n{\"answer\": \"Use yellow sticky traps.\", \"confidence\": 0.7, \"actions\": []}\n```"

	resp, err := parseSynthesis(raw)
	require.NoError(t, err)
	assert.Equal(t, "Use yellow sticky traps.", resp.Answer)
}

func TestParseSynthesisPreambleText(t *testing.T) {
	raw := `Sure, here is the answer: {"answer": "Rotate crops.", "confidence": 0.65, "actions": ["Plan rotation"]} Hope that helps!`

	resp, err := parseSynthesis(raw)
	require.NoError(t, err)
	assert.Equal(t, "Rotate crops.", resp.Answer)
}

func TestParseSynthesisRejectsBadOutput(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no json", "I cannot answer that."},
		{"truncated", `{"answer": "x", "confidence":`},
		{"empty answer", `{"answer": "  ", "confidence": 0.5, "actions": []}`},
		{"confidence too high", `{"answer": "x", "confidence": 1.5, "actions": []}`},
		{"confidence negative", `{"answer": "x", "confidence": -0.1, "actions": []}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSynthesis(tc.raw)
			assert.Error(t, err)
		})
	}
}

func TestExtractJSONNestedAndStrings(t *testing.T) {
	raw := `{"answer": "use {organic} methods", "confidence": 0.5, "actions": []}`
	assert.Equal(t, raw, extractJSON(raw))

	nested := `prefix {"a": {"b": 1}} suffix`
	assert.Equal(t, `{"a": {"b": 1}}`, extractJSON(nested))
}

type stubGenerator struct {
	output string
	err    error
}

func (s *stubGenerator) GenerateText(_ context.Context, _ string) (string, error) {
	return s.output, s.err
}

func TestGeminiProviderSynthesize(t *testing.T) {
	provider := NewGeminiProvider(&stubGenerator{
		output: `{"answer": "Spray neem oil.", "confidence": 0.8, "actions": ["Spray in the evening"]}`,
	})

	outcome := provider.Synthesize(context.Background(), sampleInput())
	require.False(t, outcome.Unavailable)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, "Spray neem oil.", outcome.Result.Answer)
	assert.Equal(t, entities.AgentAdvisory, outcome.Result.Meta.Agent)
	assert.False(t, outcome.Result.Meta.Fallback)
	assert.Equal(t, []string{"doc-1"}, outcome.Result.Meta.RetrievedIDs)
	require.Len(t, outcome.Result.Sources, 1)
	assert.Equal(t, "Aphid management", outcome.Result.Sources[0].Title)
}

func TestGeminiProviderUnavailableOnError(t *testing.T) {
	provider := NewGeminiProvider(&stubGenerator{err: errors.New("connection refused")})

	outcome := provider.Synthesize(context.Background(), sampleInput())
	assert.True(t, outcome.Unavailable)
	assert.Nil(t, outcome.Result)
}

func TestGeminiProviderUnavailableOnGarbage(t *testing.T) {
	provider := NewGeminiProvider(&stubGenerator{output: "not json at all"})

	outcome := provider.Synthesize(context.Background(), sampleInput())
	assert.True(t, outcome.Unavailable)
}
