package detector

import (
	"regexp"
	"strings"

	"github.com/sells-group/provenance-cli/internal/docx"
	"github.com/sells-group/provenance-cli/internal/model"
)

var (
	itemPropsRe = regexp.MustCompile(`itemProps\d+\.xml`)
	oformRe     = regexp.MustCompile(`(?i)(formid=|glossaryid=|jsaproject)`)
)

// OtherEngines is the speculative scorer for tools outside the primary
// catalogue: alternate office suites and generic programmatic generators.
// Designed to pick up an origin when the Application tag is missing or
// generic; lower confidence by construction, and never fed into the verdict.
func OtherEngines(b *docx.PartBundle) model.OtherEngineReport {
	app := b.Text(docx.AppProps)
	core := b.Text(docx.CoreProps)
	fonts := b.Text(docx.FontTable)
	styles := b.Text(docx.Styles)
	theme := b.Text(docx.Theme)
	body := b.Text(docx.Document)

	scores := map[model.Engine]float64{}
	for _, e := range model.Engines {
		scores[e] = 0
	}
	var evidence []model.EngineEvidence
	hit := func(e model.Engine, weight float64, note string) {
		scores[e] += weight
		evidence = append(evidence, model.EngineEvidence{Engine: e, Note: note})
	}

	appCore := strings.ToLower(app + core)

	// WPS Office (Kingsoft).
	if containsAny(appCore, "wps", "kingsoft", "wps office") {
		hit(model.EngineWPS, 8, "Application metadata contains WPS/Kingsoft signature")
	}
	if strings.Contains(app+body+styles, "schemas.wps.cn") {
		hit(model.EngineWPS, 5, "Contains Chinese WPS-specific XML namespace")
	}
	if containsAny(fonts, "SimSun", "KaiTi", "FangSong") {
		hit(model.EngineWPS, 2, "CJK font families common in WPS Office")
	}

	// AbiWord.
	if strings.Contains(appCore, "abiword") {
		hit(model.EngineAbiWord, 8, "Application tag or creator field mentions AbiWord")
	}
	if !strings.Contains(theme, "<a:theme") && strings.Contains(styles, "<w:docDefaults") {
		hit(model.EngineAbiWord, 3, "No theme.xml but includes simple docDefaults")
	}
	if strings.Contains(styles, `styleId="Normal"`) && !strings.Contains(styles, "Heading1") {
		hit(model.EngineAbiWord, 1, "Single 'Normal' style without headings (AbiWord pattern)")
	}

	// Calligra Words.
	if strings.Contains(strings.ToLower(app+core+body), "calligra") {
		hit(model.EngineCalligra, 8, "Application metadata indicates Calligra Words")
	}
	if !strings.Contains(body, "<w:compatSetting") && strings.Contains(appCore, "koffice") {
		hit(model.EngineCalligra, 2, "No compatSetting + legacy KOffice marker")
	}

	// WordPad.
	if strings.Contains(appCore, "wordpad") {
		hit(model.EngineWordPad, 8, "Application tag indicates WordPad")
	}
	bodyTail := ""
	if len(body) > 500 {
		bodyTail = body[500:]
	}
	if !strings.Contains(body, "word/theme/theme1.xml") &&
		strings.Contains(styles, `<w:styleId="Normal"`) &&
		!strings.Contains(bodyTail, "<w:style") {
		hit(model.EngineWordPad, 3, "No theme and only a 'Normal' style (WordPad pattern)")
	}

	// SoftMaker / FreeOffice (TextMaker).
	if strings.Contains(strings.ToLower(app+core+body), "textmaker") {
		hit(model.EngineSoftMaker, 8, "Application metadata includes TextMaker")
	}
	if strings.Contains(core+body, "SoftMaker Office") {
		hit(model.EngineSoftMaker, 6, "Custom props mention SoftMaker Office")
	}

	// Programmatic / automated generation (Pandoc, docx4j, Apache POI).
	if containsAny(strings.ToLower(app+core+body), "pandoc", "docx4j", "aspose", "poi", "python-docx") {
		hit(model.EngineProgrammatic, 8, "Metadata references Pandoc/docx4j/Aspose")
	}
	if !containsAny(app+core+body, "Application", "AppVersion", "Company") {
		hit(model.EngineProgrammatic, 2, "No app metadata tags (generated by library)")
	}
	if !strings.Contains(styles, "<w:themeFontLang") && strings.Contains(body, "<w:lang") {
		hit(model.EngineProgrammatic, 1.5, "Basic language tags without theme references (minimal DOCX structure)")
	}

	// OnlyOffice.
	if strings.Contains(strings.ToLower(app+core+body), "onlyoffice") {
		hit(model.EngineOnlyOffice, 8, "Application metadata references OnlyOffice")
	}
	if strings.Contains(body, "onlyoffice.com/schema") {
		hit(model.EngineOnlyOffice, 4, "Contains OnlyOffice custom schema URI")
	}
	if !strings.Contains(styles, "<w:latentStyles") {
		hit(model.EngineOnlyOffice, 1.5, "Missing latentStyles section (common in OnlyOffice exports)")
	}

	// Dedicated table/section sub-detector; folded in only when it clears
	// its own floor, so a single unit-rounding artifact cannot flip the map.
	if ooScore, ooEvidence := onlyOfficeTableSignals(body); ooScore >= 2 {
		scores[model.EngineOnlyOffice] = clamp(scores[model.EngineOnlyOffice] + ooScore)
		for _, note := range ooEvidence {
			evidence = append(evidence, model.EngineEvidence{Engine: model.EngineOnlyOffice, Note: note})
		}
	}

	for e := range scores {
		scores[e] = clamp(scores[e])
	}

	return model.OtherEngineReport{Scores: scores, Evidence: evidence}
}
