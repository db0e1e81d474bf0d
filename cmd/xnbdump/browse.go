package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/tide"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// maxVisible is the number of entries shown around the cursor.
const maxVisible = 20

func newBrowseCommand(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse a decoded container interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("browse needs a terminal; use dump or export instead")
			}
			p := tea.NewProgram(newBrowseModel(args[0], kind), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", kindAuto, "asset type: "+strings.Join(assetKinds, ", "))
	return cmd
}

// entry is one selectable line of the browser.
type entry struct {
	label  string
	kind   string
	detail string
}

type browseState int

const (
	stateList browseState = iota
	stateFilter
	stateDetail
)

type browseModel struct {
	err      error
	filename string
	kind     string
	entries  []entry
	visible  []int
	filter   textinput.Model
	selected int
	state    browseState
	loaded   bool
}

type loadedMsg struct {
	err     error
	entries []entry
}

func newBrowseModel(filename, kind string) *browseModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "label or kind"
	ti.Width = 40
	return &browseModel{
		filename: filename,
		kind:     kind,
		filter:   ti,
		state:    stateList,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.load
}

func (m *browseModel) load() tea.Msg {
	as, err := loadAsset(m.filename, m.kind)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{entries: entriesFor(as)}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "/":
			if m.state == stateList {
				m.state = stateFilter
				return m, m.filter.Focus()
			}

		case "enter":
			switch m.state {
			case stateList:
				if len(m.visible) > 0 {
					m.state = stateDetail
				}
			case stateDetail:
				m.state = stateList
			}

		case "esc":
			if m.state == stateDetail {
				m.state = stateList
			}
		}

	case loadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.entries = msg.entries
		m.applyFilter()
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		if msg.String() == "esc" {
			m.filter.SetValue("")
		}
		m.filter.Blur()
		m.state = stateList
		m.applyFilter()
		return m, nil
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browseModel) applyFilter() {
	q := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, e := range m.entries {
		if q == "" || strings.Contains(strings.ToLower(e.label), q) || strings.Contains(strings.ToLower(e.kind), q) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = max(0, len(m.visible)-1)
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Decoding container..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("XNB Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateList, stateFilter:
		start := max(0, m.selected-maxVisible/2)
		end := min(len(m.visible), start+maxVisible)
		for i := start; i < end; i++ {
			e := m.entries[m.visible[i]]
			line := labelStyle.Render(e.label) + " " + kindStyle.Render(e.kind)
			if i == m.selected {
				line = selectedStyle.Render("> " + e.label + " " + e.kind)
			} else {
				line = "  " + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "\n%d of %d entries\n", len(m.visible), len(m.entries))
		if m.state == stateFilter {
			b.WriteString(m.filter.View())
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("enter apply • esc clear"))
		} else {
			b.WriteString(helpStyle.Render("↑/↓ select • enter details • / filter • q quit"))
		}

	case stateDetail:
		e := m.entries[m.visible[m.selected]]
		fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render(e.label), kindStyle.Render(e.kind))
		b.WriteString(detailStyle.Render(e.detail))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}
	return b.String()
}

// entriesFor flattens an asset into browser entries: the container
// itself, its readers and the parts of the primary asset.
func entriesFor(as *asset) []entry {
	var summary bytes.Buffer
	writeSummary(&summary, as)
	entries := []entry{{label: "container", kind: as.Header.Platform.String(), detail: summary.String()}}

	for i, r := range as.Readers {
		entries = append(entries, entry{
			label:  fmt.Sprintf("reader %d", i+1),
			kind:   r.Identity(),
			detail: fmt.Sprintf("%s\nversion %d", r.Name, r.Version),
		})
	}
	return append(entries, valueEntries(as.Value)...)
}

func valueEntries(v any) []entry {
	switch v := v.(type) {
	case content.Texture2D:
		return textureEntries("texture", v)
	case content.SpriteFont:
		entries := textureEntries("font texture", v.Texture)
		for _, c := range v.CharMap {
			g, _ := v.Glyph(c)
			entries = append(entries, entry{
				label: fmt.Sprintf("glyph %q", c),
				kind:  "glyph",
				detail: fmt.Sprintf("bounds %+v\ncropping %+v\nkerning %+v",
					g.Bounds, g.Cropping, g.Kerning),
			})
		}
		return entries
	case *tide.Map[[]tide.Property]:
		return mapEntries(v, func(p []tide.Property) string {
			var b strings.Builder
			for _, prop := range p {
				fmt.Fprintf(&b, "%s = %s\n", prop.Name, prop.Value)
			}
			return b.String()
		})
	case *tide.Map[map[string]tide.PropertyValue]:
		return mapEntries(v, func(p map[string]tide.PropertyValue) string {
			names := make([]string, 0, len(p))
			for name := range p {
				names = append(names, name)
			}
			sort.Strings(names)
			var b strings.Builder
			for _, name := range names {
				fmt.Fprintf(&b, "%s = %s\n", name, p[name])
			}
			return b.String()
		})
	case []any:
		entries := make([]entry, len(v))
		for i, item := range v {
			entries[i] = entry{label: fmt.Sprintf("[%d]", i), kind: fmt.Sprintf("%T", item), detail: fullValue(item)}
		}
		return entries
	case []string:
		entries := make([]entry, len(v))
		for i, item := range v {
			entries[i] = entry{label: fmt.Sprintf("[%d]", i), kind: "string", detail: item}
		}
		return entries
	case map[any]any:
		var entries []entry
		for k, item := range v {
			entries = append(entries, entry{label: short(k), kind: fmt.Sprintf("%T", item), detail: fullValue(item)})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].label < entries[j].label })
		return entries
	}
	return []entry{{label: "value", kind: fmt.Sprintf("%T", v), detail: fullValue(v)}}
}

func fullValue(v any) string {
	var b bytes.Buffer
	writeValue(&b, v, "")
	return b.String()
}

func textureEntries(label string, t content.Texture2D) []entry {
	entries := []entry{{
		label:  label,
		kind:   t.Format.String(),
		detail: fmt.Sprintf("%dx%d, %d mip level(s)", t.Width, t.Height, len(t.MipLevels)),
	}}
	for i, mip := range t.MipLevels {
		entries = append(entries, entry{
			label:  fmt.Sprintf("%s mip %d", label, i),
			kind:   "mip",
			detail: fmt.Sprintf("%d bytes", len(mip)),
		})
	}
	return entries
}

func mapEntries[P any](m *tide.Map[P], props func(P) string) []entry {
	entries := []entry{{label: "map " + m.ID, kind: "map", detail: m.Description + "\n" + props(m.Properties)}}
	for _, s := range m.TileSheets {
		entries = append(entries, entry{
			label: "tilesheet " + s.ID,
			kind:  "tilesheet",
			detail: fmt.Sprintf("%s\nsheet %dx%d, tile %dx%d, margin %dx%d, spacing %dx%d\n%s",
				s.ImageSource, s.SheetSize.Width, s.SheetSize.Height, s.TileSize.Width, s.TileSize.Height,
				s.Margin.Width, s.Margin.Height, s.Spacing.Width, s.Spacing.Height, props(s.Properties)),
		})
	}
	for _, l := range m.Layers {
		entries = append(entries, entry{
			label:  "layer " + l.ID,
			kind:   "layer",
			detail: fmt.Sprintf("%dx%d cells, %d tile(s), visible %t\n%s", l.Size.Width, l.Size.Height, len(l.Tiles), l.Visible, props(l.Properties)),
		})
		for _, t := range l.Tiles {
			p := t.Position()
			kind := "static"
			if _, ok := t.(*tide.AnimatedTile[P]); ok {
				kind = "animated"
			}
			entries = append(entries, entry{
				label:  fmt.Sprintf("%s (%d,%d)", l.ID, p.X, p.Y),
				kind:   kind,
				detail: fmt.Sprintf("tilesheet %s, index %d\n%s", t.TileSheetID(), t.IndexAt(0), props(t.Properties())),
			})
		}
	}
	return entries
}
