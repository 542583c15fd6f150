package entities

import "testing"

func TestBand_Boundaries(t *testing.T) {
	cases := []struct {
		confidence float64
		expected   ConfidenceBand
	}{
		{0.85, BandHigh},
		{0.7, BandHigh},
		{0.69, BandMedium},
		{0.5, BandMedium},
		{0.4, BandMedium},
		{0.39, BandLow},
		{0.3, BandLow},
		{0.0, BandLow},
	}

	for _, tc := range cases {
		r := QueryResult{Confidence: tc.confidence}
		if band := r.Band(); band != tc.expected {
			t.Errorf("confidence %.2f: expected band %q, got %q", tc.confidence, tc.expected, band)
		}
	}
}

func TestEscalate_ConfidenceThreshold(t *testing.T) {
	r := QueryResult{Answer: "Apply mulch to retain moisture.", Confidence: 0.45}
	if r.Escalate() {
		t.Error("confidence 0.45 must not escalate")
	}

	r.Confidence = 0.39
	if !r.Escalate() {
		t.Error("confidence 0.39 must escalate")
	}

	r.Confidence = 0.6
	if r.Escalate() {
		t.Error("confidence 0.6 must not escalate")
	}
}

func TestEscalate_SentinelOverridesConfidence(t *testing.T) {
	r := QueryResult{Answer: SentinelAnswer, Confidence: 0.95}
	if !r.Escalate() {
		t.Error("sentinel answer must escalate regardless of confidence")
	}
}
