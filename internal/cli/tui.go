package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/stationviz/pkg/visgraph"
)

var (
	tabActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Underline(true)
	tabInactiveStyle = lipgloss.NewStyle().Foreground(colorDim)
	listDimStyle     = lipgloss.NewStyle().Foreground(colorDim)
	detailStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

type inspectTab int

const (
	tabNodes inspectTab = iota
	tabEdges
)

// =============================================================================
// GraphModel - Interactive graph browser
// =============================================================================

// GraphModel is the bubbletea model behind the inspect command.
type GraphModel struct {
	Graph  visgraph.Graph
	Title  string
	Tab    inspectTab
	Cursor int
	Offset int
	Height int
	Detail bool
}

// NewGraphModel creates a browser over g.
func NewGraphModel(title string, g visgraph.Graph) GraphModel {
	return GraphModel{Graph: g, Title: title, Height: 15}
}

func (m GraphModel) Init() tea.Cmd {
	return nil
}

func (m GraphModel) rows() int {
	if m.Tab == tabEdges {
		return len(m.Graph.Edges)
	}
	return len(m.Graph.Nodes)
}

func (m GraphModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "left", "right", "h", "l":
			if m.Tab == tabNodes {
				m.Tab = tabEdges
			} else {
				m.Tab = tabNodes
			}
			m.Cursor, m.Offset = 0, 0
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rows()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 12
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m GraphModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  tab switch  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if m.rows() == 0 {
		b.WriteString(listDimStyle.Render("  (empty)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, m.rows())
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	var headers []string
	var rows [][]string
	if m.Tab == tabNodes {
		headers = []string{"", "ID", "Label", "Type", "X", "Y"}
		for i := m.Offset; i < end; i++ {
			rows = append(rows, append([]string{m.marker(i)}, nodeRow(m.Graph.Nodes[i])...))
		}
	} else {
		headers = []string{"", "ID", "From", "To", "Mode", "Both ways"}
		for i := m.Offset; i < end; i++ {
			rows = append(rows, append([]string{m.marker(i)}, edgeRow(m.Graph.Edges[i])...))
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.rows())))

	if m.Detail {
		b.WriteString("\n")
		b.WriteString(detailStyle.Render(m.detail()))
	}
	return b.String()
}

func (m GraphModel) tabs() string {
	nodes := fmt.Sprintf("Nodes (%d)", len(m.Graph.Nodes))
	edges := fmt.Sprintf("Edges (%d)", len(m.Graph.Edges))
	if m.Tab == tabNodes {
		return tabActiveStyle.Render(nodes) + "  " + tabInactiveStyle.Render(edges)
	}
	return tabInactiveStyle.Render(nodes) + "  " + tabActiveStyle.Render(edges)
}

func (m GraphModel) marker(i int) string {
	if i == m.Cursor {
		return "▸"
	}
	return " "
}

// detail describes the source record of the row under the cursor.
func (m GraphModel) detail() string {
	var lines []string
	kv := func(k, v string) {
		if v != "" {
			lines = append(lines, fmt.Sprintf("%-16s %s", k, v))
		}
	}
	if m.Tab == tabNodes {
		s := m.Graph.Nodes[m.Cursor].Stop
		kv("stop id", strconv.Itoa(s.ID))
		kv("name", s.Name)
		kv("code", s.Code)
		kv("location type", s.LocationType.String())
		kv("lat, lon", fmt.Sprintf("%.6f, %.6f", s.Lat, s.Lon))
		kv("level", s.LevelID)
		kv("platform", s.PlatformCode)
		return strings.Join(lines, "\n")
	}
	p := m.Graph.Edges[m.Cursor].Pathway
	kv("pathway id", strconv.Itoa(p.ID))
	kv("from → to", fmt.Sprintf("%d → %d", p.FromStopID, p.ToStopID))
	kv("mode", p.Mode.String())
	if p.Length != nil {
		kv("length", strconv.FormatFloat(*p.Length, 'f', -1, 64)+" m")
	}
	if p.TraversalTime != nil {
		kv("traversal", strconv.Itoa(*p.TraversalTime)+" s")
	}
	if p.StairCount != nil {
		kv("stairs", strconv.Itoa(*p.StairCount))
	}
	return strings.Join(lines, "\n")
}

func nodeRow(n visgraph.Node) []string {
	x, y := "—", "—"
	if p, ok := n.Position(); ok {
		x, y = strconv.FormatFloat(p.X, 'f', 1, 64), strconv.FormatFloat(p.Y, 'f', 1, 64)
	}
	return []string{n.ID, n.Label, n.Stop.LocationType.String(), x, y}
}

func edgeRow(e visgraph.Edge) []string {
	label := e.Label
	if label == "" {
		label = "—"
	}
	both := "no"
	if e.Pathway.IsBidirectional {
		both = "yes"
	}
	return []string{e.ID, e.From, e.To, label, both}
}
