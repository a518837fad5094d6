// Package detector implements the per-origin signature detectors. Every
// detector is a pure function over the read-only PartBundle: an ordered
// checklist of independent signal tests, each contributing a fixed weight
// and one evidence line, folded into a score clamped to [0,10].
//
// The point weights are empirical fingerprint data collected from sample
// documents. They are deliberately kept as literals next to the signal they
// belong to; changing one silently changes verdicts.
package detector

import (
	"strings"

	"github.com/sells-group/provenance-cli/internal/model"
)

// scorecard accumulates signal weights and evidence in emission order.
type scorecard struct {
	score    float64
	evidence []string
}

func newScorecard() *scorecard {
	return &scorecard{evidence: []string{}}
}

// hit records a matched signal: its weight and one evidence line.
func (sc *scorecard) hit(weight float64, evidence string) {
	sc.score += weight
	sc.evidence = append(sc.evidence, evidence)
}

// note records evidence without a score contribution, for zero-weight
// observations worth surfacing to the reader.
func (sc *scorecard) note(evidence string) {
	sc.evidence = append(sc.evidence, evidence)
}

// result clamps the accumulated score to [0,10] and freezes the evidence.
// Clamping, not renormalization: many weak co-occurring signals saturate.
func (sc *scorecard) result(origin model.Origin) model.DetectorResult {
	return model.DetectorResult{
		Origin:   origin,
		Score:    clamp(sc.score),
		Evidence: sc.evidence,
	}
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// containsAll reports whether s contains every one of the given substrings.
func containsAll(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// countLines counts non-empty text lines the way a line-oriented editor
// would; empty input has zero lines.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return len(strings.Split(strings.TrimRight(s, "\n"), "\n"))
}
