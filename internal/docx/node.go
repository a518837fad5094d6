package docx

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// Node is a minimal generic XML tree. Tags and attribute keys are local
// names; namespace prefixes are dropped since every signal test matches on
// local names only.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// ParseTree decodes an XML document into a Node tree. Returns nil and an
// error for malformed input; callers treat a nil tree as "part absent".
func ParseTree(raw []byte) (*Node, error) {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "docx: unsupported charset %q", charset)
		}
		return enc.NewDecoder().Reader(input), nil
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			return nil, eris.New("docx: empty document")
		}
		if err != nil {
			return nil, eris.Wrap(err, "docx: read token")
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		root, err := decodeElement(decoder, se)
		if err != nil {
			return nil, err
		}
		return root, nil
	}
}

func decodeElement(decoder *xml.Decoder, start xml.StartElement) (*Node, error) {
	n := &Node{Tag: start.Name.Local}
	if len(start.Attr) > 0 {
		n.Attrs = make(map[string]string, len(start.Attr))
		for _, a := range start.Attr {
			n.Attrs[a.Name.Local] = a.Value
		}
	}

	var text strings.Builder
	for {
		tok, err := decoder.Token()
		if err != nil {
			return nil, eris.Wrap(err, "docx: read token")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(decoder, t)
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			n.Text = text.String()
			return n, nil
		}
	}
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(local string) string {
	if n == nil {
		return ""
	}
	return n.Attrs[local]
}

// First returns the first node with the given tag in document order,
// including the receiver itself. Nil-safe.
func (n *Node) First(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if hit := c.First(tag); hit != nil {
			return hit
		}
	}
	return nil
}

// FindAll returns every node with the given tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	if n.Tag == tag {
		out = append(out, n)
	}
	for _, c := range n.Children {
		out = append(out, c.FindAll(tag)...)
	}
	return out
}
