package mvreport

import "strings"

// Placeholder is shown for values the service left out or sent empty.
const Placeholder = "N/A"

// ScoreSuffix follows every rendered score.
const ScoreSuffix = "/5"

// Table section titles, in display order.
const (
	TitleGeneral     = "Informações Gerais"
	TitleDidactic    = "Didática da Explicação"
	TitleLanguage    = "Linguagem Utilizada"
	TitleLevel       = "Adequação de Nível"
	TitleChords      = "Acordes Identificados"
	TitleInstruments = "Instrumentos Identificados"
	TitleStructure   = "Estrutura Musical"
	TitleTablature   = "Tablatura"
)

// Presence labels for the tablature row.
const (
	Yes = "Sim"
	No  = "Não"
)

// CellKind identifies how a cell value is displayed.
type CellKind int

// Cell kinds.
const (
	CellText CellKind = iota
	CellLink          // Text is also the link target
	CellTags          // Tags rendered as inline labels
)

// Cell is the value side of a table row.
type Cell struct {
	Kind  CellKind
	Text  string
	Tags  []string
	Score *Score // Set on score cells, nil when the score is missing
}

// Row is a single label/value line of the table.
type Row struct {
	Label string // Empty for rows that span the full width
	Cell  Cell
	Sub   bool // Detail row nested under the previous rows of the section
}

// TableSection is a titled group of rows.
type TableSection struct {
	Title string
	Rows  []Row
}

// ProjectTable flattens a result into titled table sections. Sections whose
// source data is absent are left out entirely; scalar fields inside an
// emitted section fall back to Placeholder.
func ProjectTable(r *Result) []TableSection {
	if r == nil {
		r = &Result{}
	}

	sections := []TableSection{generalSection(r)}

	if p := r.Points; p != nil {
		if p.Didactic != nil {
			sections = append(sections, criterionSection(TitleDidactic, p.Didactic))
		}
		if p.Language != nil {
			sections = append(sections, criterionSection(TitleLanguage, p.Language))
		}
		if p.Level != nil {
			sections = append(sections, levelSection(p.Level))
		}
	}

	if len(r.Chords) > 0 {
		sections = append(sections, TableSection{
			Title: TitleChords,
			Rows:  []Row{{Cell: tagsCell(r.Chords)}},
		})
	}

	if len(r.Instruments) > 0 {
		sections = append(sections, TableSection{
			Title: TitleInstruments,
			Rows:  []Row{{Cell: tagsCell(r.Instruments)}},
		})
	}

	if r.Structure != nil {
		sections = append(sections, structureSection(r.Structure))
	}

	if r.Tablature != nil {
		sections = append(sections, tablatureSection(r.Tablature))
	}

	return sections
}

func generalSection(r *Result) TableSection {
	url := textCell(r.URL)
	if url.Text != Placeholder {
		url.Kind = CellLink
	}
	return TableSection{
		Title: TitleGeneral,
		Rows: []Row{
			{Label: "Vídeo", Cell: textCell(r.Video)},
			{Label: "URL", Cell: url},
			{Label: "Data", Cell: textCell(r.Date)},
			{Label: "Pontuação Geral", Cell: scoreCell(r.OverallScore)},
			{Label: "Comentário Geral", Cell: textCell(r.OverallComment)},
		},
	}
}

func criterionSection(title string, c *Criterion) TableSection {
	return TableSection{
		Title: title,
		Rows: []Row{
			{Label: "Pontuação", Cell: scoreCell(c.Score)},
			{Label: "Observações", Cell: textCell(c.Remarks)},
		},
	}
}

func levelSection(l *LevelAdequacy) TableSection {
	rows := []Row{
		{Label: "Nível Estimado", Cell: textCell(l.EstimatedLevel)},
		{Label: "Pontuação", Cell: scoreCell(l.Score)},
		{Label: "Observações", Cell: textCell(l.Remarks)},
	}
	if cc := l.ChordComplexity; cc != nil {
		rows = append(rows,
			Row{Label: "Tipos de Acordes", Cell: textCell(cc.Types), Sub: true},
			Row{Label: "Quantidade", Cell: textCell(cc.ApproxCount), Sub: true},
		)
	}
	rows = append(rows, Row{Label: "Técnicas Ensinadas", Cell: textCell(l.TechniqueComplexity), Sub: true})
	return TableSection{Title: TitleLevel, Rows: rows}
}

func structureSection(s *MusicalStructure) TableSection {
	section := TableSection{Title: TitleStructure}
	if len(s.Parts) > 0 {
		section.Rows = append(section.Rows, Row{Label: "Partes", Cell: tagsCell(s.Parts)})
	}
	if v := s.Progression.String(); v != "" {
		section.Rows = append(section.Rows, Row{Label: "Progressão", Cell: Cell{Text: v}})
	}
	if v := s.Key.String(); v != "" {
		section.Rows = append(section.Rows, Row{Label: "Tonalidade", Cell: Cell{Text: v}})
	}
	return section
}

func tablatureSection(t *Tablature) TableSection {
	present := No
	if t.Present {
		present = Yes
	}
	section := TableSection{
		Title: TitleTablature,
		Rows:  []Row{{Label: "Presente", Cell: Cell{Text: present}}},
	}
	if v := t.Remarks.String(); v != "" {
		section.Rows = append(section.Rows, Row{Label: "Observações", Cell: Cell{Text: v}})
	}
	return section
}

func textCell(t *Text) Cell {
	if v := t.String(); v != "" {
		return Cell{Text: v}
	}
	return Cell{Text: Placeholder}
}

// scoreCell keeps zero as a real score; only a missing or empty score is placeholdered.
func scoreCell(s *Score) Cell {
	v := strings.TrimSpace(s.String())
	if v == "" {
		v = Placeholder
	}
	return Cell{Text: v + ScoreSuffix, Score: s}
}

func tagsCell(tags []string) Cell {
	return Cell{Kind: CellTags, Tags: append([]string(nil), tags...)}
}
