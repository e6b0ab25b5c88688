package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"pet-care-log/internal/calendar"
	"pet-care-log/internal/domain/feeding"
	"pet-care-log/internal/domain/pets"

	"github.com/charmbracelet/lipgloss"
)

const cellWidth = 9

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(cellWidth).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	outsideStyle = cellStyle.
			Foreground(lipgloss.Color("240"))

	todayStyle = cellStyle.
			Foreground(lipgloss.Color("236")).
			Background(lipgloss.Color("214")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderMonth dibuja la grilla (semanas que empiezan en domingo).
// Cada celda muestra el día y marcas: F comidas, W peso, M mantenimiento.
func RenderMonth(m calendar.Month, cells [][]calendar.Cell) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")))
	b.WriteString("\n")

	header := make([]string, 0, len(weekdayNames))
	for _, name := range weekdayNames {
		header = append(header, headerStyle.Render(name))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for _, week := range cells {
		row := make([]string, 0, len(week))
		for _, c := range week {
			row = append(row, renderCell(c))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(c calendar.Cell) string {
	text := fmt.Sprintf("%2d %s", c.Day.Day, marks(c.DayData))
	switch {
	case c.IsToday:
		return todayStyle.Render(text)
	case !c.InMonth:
		return outsideStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

func marks(d calendar.DayData) string {
	var m strings.Builder
	if len(d.Feeding) > 0 {
		fmt.Fprintf(&m, "F%d", len(d.Feeding))
	}
	if len(d.Weights) > 0 {
		m.WriteString("W")
	}
	if len(d.Maintenance) > 0 {
		m.WriteString("M")
	}
	return m.String()
}

// RenderDay lista comidas, pesos y mantenimiento de un día local.
func RenderDay(d calendar.DayData, loc *time.Location, petNames map[string]string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Day.Date().Format("Monday, January 2 2006")))
	b.WriteString("\n")

	if d.Empty() {
		b.WriteString(mutedStyle.Render("No records for this day."))
		b.WriteString("\n")
		return b.String()
	}

	if len(d.Feeding) > 0 {
		b.WriteString("Feeding\n")
		for _, r := range d.Feeding {
			label := r.FeedTypeID
			if r.FeedType != nil {
				label = r.FeedType.Label()
			}
			fmt.Fprintf(&b, "  %s  %-24s %s  %s\n",
				r.FeedingTime.In(loc).Format("15:04"), label, consumptionMark(r.Consumed), mutedStyle.Render(r.ID))
		}
	}
	if len(d.Weights) > 0 {
		b.WriteString("Weight\n")
		for _, w := range d.Weights {
			name := petNames[w.PetID]
			if name == "" {
				name = w.PetID
			}
			fmt.Fprintf(&b, "  %-12s %.2f kg  %s\n", name, w.Weight, mutedStyle.Render(w.ID))
		}
	}
	if len(d.Maintenance) > 0 {
		b.WriteString("Maintenance\n")
		for _, m := range d.Maintenance {
			fmt.Fprintf(&b, "  %s  %-24s %s\n", m.PerformedAt.In(loc).Format("15:04"), m.Type.Label(), mutedStyle.Render(m.ID))
			if m.Notes != "" {
				fmt.Fprintf(&b, "         %s\n", m.Notes)
			}
		}
	}
	return b.String()
}

func consumptionMark(v *bool) string {
	switch {
	case v == nil:
		return mutedStyle.Render("?")
	case *v:
		return successStyle.Render("eaten")
	default:
		return errorStyle.Render("left")
	}
}

func messageLine(msg calendar.Message) string {
	if msg.Kind == calendar.MessageError {
		return errorStyle.Render(msg.Text)
	}
	return successStyle.Render(msg.Text)
}

func renderSchedules(items []feeding.Schedule) string {
	if len(items) == 0 {
		return mutedStyle.Render("No feeding schedules.") + "\n"
	}
	var b strings.Builder
	for _, s := range items {
		state := successStyle.Render("active")
		if !s.IsActive {
			state = mutedStyle.Render("paused")
		}
		fmt.Fprintf(&b, "%s  %-6s  %s\n", s.Time, state, mutedStyle.Render(s.ID))
	}
	return b.String()
}

func renderFeedTypes(items []feeding.FeedType) string {
	if len(items) == 0 {
		return mutedStyle.Render("No feed types.") + "\n"
	}
	sorted := append([]feeding.FeedType(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Label() < sorted[j].Label() })

	var b strings.Builder
	for _, ft := range sorted {
		fmt.Fprintf(&b, "%-28s %s\n", ft.Label(), mutedStyle.Render(ft.ID))
	}
	return b.String()
}

func renderPets(items []pets.Pet, selected string) string {
	if len(items) == 0 {
		return mutedStyle.Render("No pets.") + "\n"
	}
	var b strings.Builder
	for _, p := range items {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %-16s %s\n", marker, p.Name, mutedStyle.Render(p.ID))
	}
	return b.String()
}

func petNames(items []pets.Pet) map[string]string {
	out := make(map[string]string, len(items))
	for _, p := range items {
		out[p.ID] = p.Name
	}
	return out
}
