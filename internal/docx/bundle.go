package docx

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"

	"github.com/rotisserie/eris"
)

// Fatal conditions at the extraction boundary. Everything past this point
// degrades gracefully: a missing or corrupt individual part is never an error.
var (
	// ErrPackageNotFound means the path does not resolve to a readable file.
	ErrPackageNotFound = eris.New("docx: package not found")
	// ErrMalformedPackage means the file is not a valid ZIP container.
	ErrMalformedPackage = eris.New("docx: not a valid OOXML package")
)

// PartName identifies one named part of the package.
type PartName string

const (
	AppProps     PartName = "app"
	CoreProps    PartName = "core"
	CustomProps  PartName = "custom"
	ContentTypes PartName = "content_types"
	FontTable    PartName = "fonts"
	Document     PartName = "document"
	Styles       PartName = "styles"
	Settings     PartName = "settings"
	Theme        PartName = "theme"
	WebSettings  PartName = "web_settings"
)

// partEntries maps each part to its archive entry path.
var partEntries = map[PartName]string{
	AppProps:     "docProps/app.xml",
	CoreProps:    "docProps/core.xml",
	CustomProps:  "docProps/custom.xml",
	ContentTypes: "[Content_Types].xml",
	FontTable:    "word/fontTable.xml",
	Document:     "word/document.xml",
	Styles:       "word/styles.xml",
	Settings:     "word/settings.xml",
	Theme:        "word/theme/theme1.xml",
	WebSettings:  "word/webSettings.xml",
}

// Part holds one extracted part in both forms. Tree is nil when the entry is
// absent or its XML is malformed.
type Part struct {
	Text string
	Tree *Node
}

// PartBundle is the immutable extraction result consumed by every detector.
// Absent parts carry empty text and a nil tree.
type PartBundle struct {
	// Entries lists every archive entry name in stored order.
	Entries []string

	parts map[PartName]Part
}

// Text returns the raw text of a part, empty when absent.
func (b *PartBundle) Text(name PartName) string {
	return b.parts[name].Text
}

// Tree returns the parsed tree of a part, nil when absent or malformed.
func (b *PartBundle) Tree(name PartName) *Node {
	return b.parts[name].Tree
}

// ReadBundle opens the package at path and extracts the fixed part set.
func ReadBundle(path string) (*PartBundle, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(ErrPackageNotFound, "open %s", path)
		}
		if fi, statErr := os.Stat(path); statErr == nil && fi.IsDir() {
			return nil, eris.Wrapf(ErrPackageNotFound, "open %s", path)
		}
		return nil, eris.Wrapf(ErrMalformedPackage, "open %s", path)
	}
	defer r.Close() //nolint:errcheck

	byName := make(map[string]*zip.File, len(r.File))
	entries := make([]string, 0, len(r.File))
	for _, f := range r.File {
		entries = append(entries, f.Name)
		byName[f.Name] = f
	}

	parts := make(map[PartName]Part, len(partEntries))
	for name, entry := range partEntries {
		f, ok := byName[entry]
		if !ok {
			parts[name] = Part{}
			continue
		}
		raw, err := readEntry(f)
		if err != nil {
			// A single unreadable entry must not abort the analysis.
			parts[name] = Part{}
			continue
		}
		parts[name] = newPart(raw)
	}

	return &PartBundle{Entries: entries, parts: parts}, nil
}

// NewBundle builds a bundle directly from raw part text, bypassing archive
// extraction. Entries, if given, populate the raw entry list.
func NewBundle(texts map[PartName]string, entries ...string) *PartBundle {
	parts := make(map[PartName]Part, len(partEntries))
	for name := range partEntries {
		if txt, ok := texts[name]; ok {
			parts[name] = newPart([]byte(txt))
		} else {
			parts[name] = Part{}
		}
	}
	return &PartBundle{Entries: entries, parts: parts}
}

func newPart(raw []byte) Part {
	p := Part{Text: string(raw)}
	if tree, err := ParseTree(raw); err == nil {
		p.Tree = tree
	}
	return p
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, eris.Wrapf(err, "docx: open entry %s", f.Name)
	}
	defer rc.Close() //nolint:errcheck

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, eris.Wrapf(err, "docx: read entry %s", f.Name)
	}
	return raw, nil
}
