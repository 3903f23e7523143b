// Package mvreport provides domain types for presenting music video analysis reports.
package mvreport

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Result is the analysis report returned by the remote service.
// Every field is optional; nil means the service did not send it (or sent a
// falsy value where a group was expected).
type Result struct {
	Video          *Text
	URL            *Text
	Date           *Text
	Evaluator      *Text
	OverallScore   *Score
	OverallComment *Text
	Points         *EvaluationPoints
	Chords         []string // nil if absent, empty if sent as []
	Instruments    []string // nil if absent, empty if sent as []
	Structure      *MusicalStructure
	Tablature      *Tablature

	raw     json.RawMessage            // document exactly as received
	members map[string]json.RawMessage // top-level members as received
}

// EvaluationPoints groups the per-criterion evaluations.
type EvaluationPoints struct {
	Didactic *Criterion
	Language *Criterion
	Level    *LevelAdequacy
}

// Criterion is a single scored evaluation point.
type Criterion struct {
	Score   *Score
	Remarks *Text
}

// LevelAdequacy evaluates whether the lesson fits its estimated skill level.
type LevelAdequacy struct {
	EstimatedLevel      *Text
	ChordComplexity     *ChordComplexity
	TechniqueComplexity *Text
	Score               *Score
	Remarks             *Text
}

// ChordComplexity describes the chords taught in the lesson.
type ChordComplexity struct {
	Types       *Text
	ApproxCount *Text
}

// MusicalStructure describes the song form discussed in the video.
type MusicalStructure struct {
	Parts       []string
	Progression *Text
	Key         *Text
}

// Tablature reports whether the video mentions a tablature.
type Tablature struct {
	Present Flag
	Remarks *Text
}

// ErrNotObject is returned when a result document is not a JSON object.
var ErrNotObject = errors.New("result document is not a JSON object")

// ParseResult decodes a result document, keeping the received bytes so JSON
// views can reproduce every value verbatim and in received key order.
//
// Only the top level must be an object. Members of unexpected types never
// fail the parse: scalars become text, a falsy group is absent and any other
// non-object group is empty.
func ParseResult(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return err
	}

	*r = Result{
		Video:          text(members["avaliacaoVideo"]),
		URL:            text(members["urlVideo"]),
		Date:           text(members["dataAvaliacao"]),
		Evaluator:      text(members["avaliador"]),
		OverallScore:   score(members["pontuacaoGeral"]),
		OverallComment: text(members["comentariosGerais"]),
		Points:         evaluationPoints(members["pontosAvaliacao"]),
		Chords:         list(members["acordesIdentificados"]),
		Instruments:    list(members["instrumentosIdentificados"]),
		Structure:      musicalStructure(members["estruturaMusical"]),
		Tablature:      tablature(members["tablatura"]),
		raw:            append(json.RawMessage(nil), trimmed...),
		members:        members,
	}
	return nil
}

// MarshalJSON returns the document as it was received.
func (r *Result) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("{}"), nil
	}
	return r.raw, nil
}

// Raw returns the document bytes as received from the service.
func (r *Result) Raw() json.RawMessage {
	return r.raw
}

// member returns a top-level member as received if it is truthy.
func (r *Result) member(key string) (json.RawMessage, bool) {
	v, ok := r.members[key]
	if !ok || !truthy(v) {
		return nil, false
	}
	return v, true
}

func evaluationPoints(raw json.RawMessage) *EvaluationPoints {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	return &EvaluationPoints{
		Didactic: criterion(m["didaticaExplicacao"]),
		Language: criterion(m["linguagemUtilizada"]),
		Level:    levelAdequacy(m["adequacaoNivel"]),
	}
}

func criterion(raw json.RawMessage) *Criterion {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	return &Criterion{
		Score:   score(m["pontuacao"]),
		Remarks: text(m["observacoes"]),
	}
}

func levelAdequacy(raw json.RawMessage) *LevelAdequacy {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	return &LevelAdequacy{
		EstimatedLevel:      text(m["nivelEstimadoVideo"]),
		ChordComplexity:     chordComplexity(m["complexidadeAcordes"]),
		TechniqueComplexity: text(m["complexidadeTecnica"]),
		Score:               score(m["pontuacao"]),
		Remarks:             text(m["observacoes"]),
	}
}

func chordComplexity(raw json.RawMessage) *ChordComplexity {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	return &ChordComplexity{
		Types:       text(m["tipos"]),
		ApproxCount: text(m["contagemAproximada"]),
	}
}

func musicalStructure(raw json.RawMessage) *MusicalStructure {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	return &MusicalStructure{
		Parts:       list(m["partes"]),
		Progression: text(m["progressao"]),
		Key:         text(m["tonalidade"]),
	}
}

func tablature(raw json.RawMessage) *Tablature {
	m, ok := object(raw)
	if !ok {
		return nil
	}
	t := &Tablature{Remarks: text(m["observacoes"])}
	if v, ok := m["presente"]; ok {
		t.Present = Flag(truthy(v))
	}
	return t
}

// object returns the members of a group. A falsy value is absent; any other
// value that is not an object is an empty group.
func object(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	if !truthy(raw) {
		return nil, false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return map[string]json.RawMessage{}, true
	}
	return m, true
}

// list decodes a list of scalars. Elements keep their JSON spelling, and a
// truthy scalar in place of the list is a list of one.
func list(raw json.RawMessage) []string {
	if absent(raw) {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		if !truthy(raw) {
			return nil
		}
		elems = []json.RawMessage{raw}
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		s, err := scalarText(e)
		if err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}

func text(raw json.RawMessage) *Text {
	if absent(raw) {
		return nil
	}
	var t Text
	if err := t.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &t
}

func score(raw json.RawMessage) *Score {
	if absent(raw) {
		return nil
	}
	var s Score
	if err := s.UnmarshalJSON(raw); err != nil {
		return nil
	}
	return &s
}

// absent reports whether a member is missing or JSON null.
func absent(raw json.RawMessage) bool {
	v := bytes.TrimSpace(raw)
	return len(v) == 0 || string(v) == "null"
}

// truthy follows JSON truthiness: false, 0, "", null and missing are false.
// Objects and arrays are true even when empty.
func truthy(raw json.RawMessage) bool {
	switch s := string(bytes.TrimSpace(raw)); s {
	case "", "false", "null", `""`:
		return false
	default:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n != 0
		}
		return true
	}
}

// Text is a free-text field. The service occasionally sends numbers or
// booleans where text is expected; those keep their JSON spelling.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	s, err := scalarText(data)
	if err != nil {
		return err
	}
	*t = Text(s)
	return nil
}

// String returns the text, or "" for a nil Text.
func (t *Text) String() string {
	if t == nil {
		return ""
	}
	return string(*t)
}

// Score is a 0-5 rating. Numbers and numeric strings are both accepted.
type Score string

// UnmarshalJSON implements json.Unmarshaler.
func (s *Score) UnmarshalJSON(data []byte) error {
	v, err := scalarText(data)
	if err != nil {
		return err
	}
	*s = Score(strings.TrimSpace(v))
	return nil
}

// String returns the score as sent, or "" for a nil Score.
func (s *Score) String() string {
	if s == nil {
		return ""
	}
	return string(*s)
}

// Value returns the numeric value of the score, if it has one.
func (s *Score) Value() (float64, bool) {
	if s == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(*s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Flag is a boolean that follows JSON truthiness: false, 0, "" and null are false.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag(truthy(data))
	return nil
}

// scalarText decodes a JSON scalar into display text. Strings are unquoted,
// other scalars keep their JSON form, and containers are compacted.
func scalarText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
