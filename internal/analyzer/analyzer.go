// Package analyzer orchestrates the provenance pipeline: part extraction,
// the detector suite, score aggregation, and the verdict reducer.
package analyzer

import (
	"go.uber.org/zap"

	"github.com/sells-group/provenance-cli/internal/detector"
	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

// Analyze opens the package at path and produces the full report.
// The two boundary errors (docx.ErrPackageNotFound, docx.ErrMalformedPackage)
// are the only failures; past extraction the pipeline always yields a report.
func Analyze(path string) (*model.ProvenanceReport, error) {
	bundle, err := docx.ReadBundle(path)
	if err != nil {
		return nil, err
	}

	report := AnalyzeBundle(bundle)
	report.File = path

	zap.L().Debug("analyzer: package scored",
		zap.String("file", path),
		zap.String("verdict", report.Verdict),
		zap.Float64("taint", report.Taint),
	)

	return report, nil
}

// AnalyzeBundle runs every detector over the bundle and assembles the
// report. Non-Word detectors run first: the Word detector consults the
// LibreOffice, Google Docs, and Pages scores as its disambiguating signal.
func AnalyzeBundle(b *docx.PartBundle) *model.ProvenanceReport {
	lo := detector.LibreOffice(b)
	gd := detector.GoogleDocs(b)
	pg := detector.ApplePages(b)
	pd := detector.Pandoc(b)
	wp := detector.WordPad(b)
	te := detector.TextEdit(b)
	wd := detector.Word(b, lo.Score, gd.Score, pg.Score)

	scores := model.ScoreBoard{}
	evidence := map[model.Origin][]string{}
	for _, res := range []model.DetectorResult{wd, lo, gd, pg, pd, wp, te} {
		scores[res.Origin] = res.Score
		evidence[res.Origin] = res.Evidence
	}

	return &model.ProvenanceReport{
		Scores:       scores,
		Verdict:      ChooseVerdict(scores),
		Taint:        scores.Taint(),
		Evidence:     evidence,
		WordVariants: detector.WordVariants(b),
		Speculative: model.SpeculativeReport{
			WordWeb:      detector.WordWebSharePoint(b),
			OtherEngines: detector.OtherEngines(b),
		},
	}
}
