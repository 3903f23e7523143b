package mvreport

import (
	"bytes"
	"encoding/json"
	"strings"
)

// JSON explorer section titles. The table titles are reused where the groups match.
const (
	TitlePoints       = "Pontos de Avaliação"
	TitleFullDocument = "JSON Completo"
)

// indent is the nesting unit of every serialized document.
const indent = "  "

// JSONSection is a named sub-document of the result, serialized for display.
type JSONSection struct {
	Title string
	Body  string
}

// Document is the JSON view of a result: ordered sub-documents plus the
// full document snapshot that is copied to the clipboard.
type Document struct {
	Sections []JSONSection
	Full     string
}

// generalKeys are the members shown in the general information sub-document, in order.
var generalKeys = []string{
	"avaliacaoVideo",
	"urlVideo",
	"dataAvaliacao",
	"avaliador",
	"pontuacaoGeral",
	"comentariosGerais",
}

// Sectionize splits a result into named sub-documents that carry the
// received values unchanged. Optional groups missing from the result produce
// no sub-document. The output depends only on the received bytes.
func Sectionize(r *Result) (Document, error) {
	if r == nil {
		r = &Result{}
	}

	var doc Document

	general, err := encodeMembers(r, generalKeys, nil)
	if err != nil {
		return Document{}, err
	}
	doc.Sections = append(doc.Sections, JSONSection{Title: TitleGeneral, Body: general})

	groups := []struct {
		title string
		key   string
		wrap  string // Non-empty wraps the member in an object under this key
	}{
		{TitlePoints, "pontosAvaliacao", ""},
		{TitleChords, "acordesIdentificados", "acordes"},
		{TitleInstruments, "instrumentosIdentificados", "instrumentos"},
		{TitleStructure, "estruturaMusical", ""},
		{TitleTablature, "tablatura", ""},
	}
	for _, g := range groups {
		v, ok := r.member(g.key)
		if !ok {
			continue
		}
		var body string
		if g.wrap != "" {
			body, err = encodeMembers(r, []string{g.key}, []string{g.wrap})
		} else {
			body, err = indentJSON(v)
		}
		if err != nil {
			return Document{}, err
		}
		doc.Sections = append(doc.Sections, JSONSection{Title: g.title, Body: body})
	}

	full, err := indentJSON(r.raw)
	if err != nil {
		return Document{}, err
	}
	doc.Full = full

	return doc, nil
}

// encodeMembers writes an object holding the named members of r in the given
// order, optionally renamed. Missing members are omitted.
func encodeMembers(r *Result, keys, names []string) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	for i, key := range keys {
		v, ok := r.members[key]
		if !ok {
			continue
		}
		name := key
		if names != nil {
			name = names[i]
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		quoted, err := marshalNoEscape(name)
		if err != nil {
			return "", err
		}
		buf.Write(quoted)
		buf.WriteByte(':')
		buf.Write(v)
		n++
	}
	buf.WriteByte('}')
	return indentJSON(buf.Bytes())
}

// indentJSON re-indents a JSON value, keeping key order and string spelling.
func indentJSON(data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "{}", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// LineCount returns the number of display lines in s.
func LineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
