package model

// Origin identifies a candidate authoring tool in the primary catalogue.
type Origin string

const (
	OriginWord        Origin = "word"
	OriginLibreOffice Origin = "libreoffice"
	OriginGoogleDocs  Origin = "google_docs"
	OriginApplePages  Origin = "apple_pages"
	OriginPandoc      Origin = "pandoc"
	OriginWordPad     Origin = "wordpad"
	OriginTextEdit    Origin = "textedit"
)

// Origins is the closed catalogue in report order. Word is first; every
// ordered walk over the board (top-competitor selection, text rendering)
// uses this slice so ties resolve the same way on every run.
var Origins = []Origin{
	OriginWord,
	OriginLibreOffice,
	OriginGoogleDocs,
	OriginApplePages,
	OriginPandoc,
	OriginWordPad,
	OriginTextEdit,
}

var originLabels = map[Origin]string{
	OriginWord:        "Microsoft Word",
	OriginLibreOffice: "LibreOffice",
	OriginGoogleDocs:  "Google Docs",
	OriginApplePages:  "Apple Pages",
	OriginPandoc:      "Pandoc / programmatic",
	OriginWordPad:     "WordPad",
	OriginTextEdit:    "TextEdit",
}

// Label returns the human-readable name for the origin.
func (o Origin) Label() string {
	if l, ok := originLabels[o]; ok {
		return l
	}
	return string(o)
}

// Variant identifies a Microsoft Word sub-variant.
type Variant string

const (
	VariantWordWeb     Variant = "word_web"
	VariantWordDesktop Variant = "word_desktop"
)

// Variants lists the two Word sub-variants in report order.
var Variants = []Variant{VariantWordWeb, VariantWordDesktop}

// Label returns the human-readable name for the variant.
func (v Variant) Label() string {
	switch v {
	case VariantWordWeb:
		return "Word for the Web"
	case VariantWordDesktop:
		return "Word Desktop"
	}
	return string(v)
}

// Engine identifies a tool in the speculative other-engine catalogue.
type Engine string

const (
	EngineWPS          Engine = "wps"
	EngineOnlyOffice   Engine = "onlyoffice"
	EngineAbiWord      Engine = "abiword"
	EngineCalligra     Engine = "calligra"
	EngineWordPad      Engine = "wordpad"
	EngineSoftMaker    Engine = "softmaker"
	EngineProgrammatic Engine = "programmatic"
)

// Engines lists the speculative catalogue in report order.
var Engines = []Engine{
	EngineWPS,
	EngineOnlyOffice,
	EngineAbiWord,
	EngineCalligra,
	EngineWordPad,
	EngineSoftMaker,
	EngineProgrammatic,
}

var engineLabels = map[Engine]string{
	EngineWPS:          "WPS Office",
	EngineOnlyOffice:   "OnlyOffice",
	EngineAbiWord:      "AbiWord",
	EngineCalligra:     "Calligra Words",
	EngineWordPad:      "WordPad",
	EngineSoftMaker:    "TextMaker",
	EngineProgrammatic: "Programmatic",
}

// Label returns the human-readable name for the engine.
func (e Engine) Label() string {
	if l, ok := engineLabels[e]; ok {
		return l
	}
	return string(e)
}

// DetectorResult is the output of a single origin detector: a confidence
// score clamped to [0,10] and the matched signals in emission order.
type DetectorResult struct {
	Origin   Origin   `json:"origin"`
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`
}

// ScoreBoard maps every catalogue origin to its detector score.
type ScoreBoard map[Origin]float64

// TopNonWord returns the highest-scoring origin other than Word. Ties
// resolve to the earlier origin in the Origins order.
func (sb ScoreBoard) TopNonWord() (Origin, float64) {
	top := Origins[1]
	topVal := sb[top]
	for _, o := range Origins[1:] {
		if sb[o] > topVal {
			top = o
			topVal = sb[o]
		}
	}
	return top, topVal
}

// Taint is the strongest competing non-Word confidence, used to gauge how
// clean a Word attribution is. Always derived from the board, never stored.
func (sb ScoreBoard) Taint() float64 {
	_, topVal := sb.TopNonWord()
	return topVal
}

// VariantReport holds the Word web-vs-desktop sub-classification.
type VariantReport struct {
	Scores   map[Variant]float64  `json:"scores"`
	Evidence map[Variant][]string `json:"evidence"`
}

// LikelyVariant returns the dominant Word variant, or empty when neither
// bucket scored.
func (vr VariantReport) LikelyVariant() Variant {
	if vr.Scores[VariantWordWeb] > vr.Scores[VariantWordDesktop] {
		return VariantWordWeb
	}
	if vr.Scores[VariantWordDesktop] > 0 {
		return VariantWordDesktop
	}
	return ""
}

// WordWebReport is the speculative Word 365 / SharePoint probe result.
type WordWebReport struct {
	Score    float64  `json:"score"`
	Evidence []string `json:"evidence"`
}

// EngineEvidence ties one matched speculative signal to its engine.
type EngineEvidence struct {
	Engine Engine `json:"engine"`
	Note   string `json:"note"`
}

// OtherEngineReport scores the speculative engine catalogue. Advisory only;
// it never feeds the primary board or the verdict.
type OtherEngineReport struct {
	Scores   map[Engine]float64 `json:"scores"`
	Evidence []EngineEvidence   `json:"evidence"`
}

// SpeculativeReport groups the advisory detector family.
type SpeculativeReport struct {
	WordWeb      WordWebReport     `json:"word_web"`
	OtherEngines OtherEngineReport `json:"other_engines"`
}

// ProvenanceReport is the complete result of one package analysis.
// Immutable once assembled.
type ProvenanceReport struct {
	File         string              `json:"file,omitempty"`
	Scores       ScoreBoard          `json:"scores"`
	Verdict      string              `json:"verdict"`
	Taint        float64             `json:"taint"`
	Evidence     map[Origin][]string `json:"evidence"`
	WordVariants VariantReport       `json:"word_variants"`
	Speculative  SpeculativeReport   `json:"speculative"`
}
