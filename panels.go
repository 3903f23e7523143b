package mvreport

// PanelState is the expand/collapse state of a JSON panel.
type PanelState int

// Panel states.
const (
	Collapsed PanelState = iota
	Expanded
)

// MeasureFunc returns the content height of a section as rendered.
type MeasureFunc func(JSONSection) int

// Panel is the UI state of one rendered JSON section.
type Panel struct {
	Section JSONSection
	State   PanelState
	Reveal  int // Lines revealed; the measured height when expanded, 0 when collapsed
}

// Panels tracks the collapsible panels of one rendered document, keyed by
// section title. Build a new Panels for every render; state never carries over.
type Panels struct {
	order   []string
	panels  map[string]*Panel
	measure MeasureFunc
}

// NewPanels creates collapsed panels for the given sections. A nil measure
// uses the line count of the section body.
func NewPanels(sections []JSONSection, measure MeasureFunc) *Panels {
	if measure == nil {
		measure = func(s JSONSection) int { return LineCount(s.Body) }
	}
	p := &Panels{
		panels:  make(map[string]*Panel, len(sections)),
		measure: measure,
	}
	for _, s := range sections {
		if _, dup := p.panels[s.Title]; dup {
			continue
		}
		p.order = append(p.order, s.Title)
		p.panels[s.Title] = &Panel{Section: s}
	}
	return p
}

// Titles returns the panel titles in display order.
func (p *Panels) Titles() []string {
	return append([]string(nil), p.order...)
}

// Len returns the number of panels.
func (p *Panels) Len() int {
	return len(p.order)
}

// Get returns a copy of the panel with the given title.
func (p *Panels) Get(title string) (Panel, bool) {
	panel, ok := p.panels[title]
	if !ok {
		return Panel{}, false
	}
	return *panel, true
}

// State returns the state of the panel with the given title. Unknown titles are Collapsed.
func (p *Panels) State(title string) PanelState {
	if panel, ok := p.panels[title]; ok {
		return panel.State
	}
	return Collapsed
}

// Toggle flips a single panel between Collapsed and Expanded.
func (p *Panels) Toggle(title string) {
	panel, ok := p.panels[title]
	if !ok {
		return
	}
	if panel.State == Expanded {
		p.set(panel, Collapsed)
	} else {
		p.set(panel, Expanded)
	}
}

// SetAll puts every panel into the same state.
func (p *Panels) SetAll(state PanelState) {
	for _, title := range p.order {
		p.set(p.panels[title], state)
	}
}

// ExpandAll expands every panel.
func (p *Panels) ExpandAll() {
	p.SetAll(Expanded)
}

// CollapseAll collapses every panel.
func (p *Panels) CollapseAll() {
	p.SetAll(Collapsed)
}

func (p *Panels) set(panel *Panel, state PanelState) {
	panel.State = state
	if state == Expanded {
		panel.Reveal = p.measure(panel.Section)
	} else {
		panel.Reveal = 0
	}
}
