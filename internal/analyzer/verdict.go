package analyzer

import (
	"fmt"

	"github.com/sells-group/provenance-cli/internal/model"
)

// Verdict thresholds. The inequalities below are exact contracts: a top
// competitor of 7.0 is a definite export, 6.99 is not.
const (
	definiteExport = 7.0
	likelyExport   = 5.0
	pureWord       = 7.0
	probablyWord   = 5.0
	cleanCeiling   = 4.0
	mixedCeiling   = 5.0
)

// ChooseVerdict reduces a score board to the final attribution label via a
// fixed priority cascade. This is the single source of truth for
// attribution; a pure, total function of the board.
func ChooseVerdict(sb model.ScoreBoard) string {
	top, topVal := sb.TopNonWord()
	wordVal := sb[model.OriginWord]

	switch {
	case topVal >= definiteExport:
		return fmt.Sprintf("Definitely %s export", top.Label())
	case topVal >= likelyExport:
		return fmt.Sprintf("Likely %s export or mixed", top.Label())
	case wordVal >= pureWord && topVal < cleanCeiling:
		return "Pure Microsoft Word"
	case wordVal >= probablyWord && topVal < mixedCeiling:
		return "Probably Microsoft Word (minor artifacts present)"
	default:
		return "Inconclusive / mixed"
	}
}
