package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todoboard/pkg/todo"
)

// Slice labels, in the order they appear in Data
const (
	LabelFinish   = "Finish"
	LabelUnfinish = "Unfinish"
)

// Data is the two-slice completion chart
type Data struct {
	Label  string
	Labels []string
	Values []int
}

// Finished is the number of completed items
func (d Data) Finished() int { return d.Values[0] }

// Unfinished is the number of open items
func (d Data) Unfinished() int { return d.Values[1] }

// Total is the number of items charted
func (d Data) Total() int { return d.Values[0] + d.Values[1] }

// Partition counts completed and open items over the whole list
func Partition(items []todo.Item) Data {
	finished := 0
	for _, it := range items {
		if it.IsComplete {
			finished++
		}
	}
	return Data{
		Label:  "Status todo item",
		Labels: []string{LabelFinish, LabelUnfinish},
		Values: []int{finished, len(items) - finished},
	}
}

// Palette colors the two slices and the caption
type Palette struct {
	Finish   lipgloss.Color
	Unfinish lipgloss.Color
	Muted    lipgloss.Color
}

var DefaultPalette = Palette{
	Finish:   lipgloss.Color("221"),
	Unfinish: lipgloss.Color("79"),
	Muted:    lipgloss.Color("240"),
}

// Render draws d with the default palette
func Render(d Data, width int) string {
	return RenderWith(d, width, DefaultPalette)
}

// RenderWith draws a horizontal two-slice bar with a legend underneath
func RenderWith(d Data, width int, p Palette) string {
	if width < 10 {
		width = 10
	}

	finishStyle := lipgloss.NewStyle().Foreground(p.Finish)
	unfinishStyle := lipgloss.NewStyle().Foreground(p.Unfinish)
	muted := lipgloss.NewStyle().Foreground(p.Muted)

	var bar string
	if d.Total() == 0 {
		bar = muted.Render(strings.Repeat("░", width))
	} else {
		filled := Split(d.Finished(), d.Total(), width)
		bar = finishStyle.Render(strings.Repeat("█", filled)) +
			unfinishStyle.Render(strings.Repeat("█", width-filled))
	}

	legend := fmt.Sprintf("%s %s %d (%d%%)   %s %s %d (%d%%)",
		finishStyle.Render("■"), d.Labels[0], d.Finished(), Percent(d.Finished(), d.Total()),
		unfinishStyle.Render("■"), d.Labels[1], d.Unfinished(), Percent(d.Unfinished(), d.Total()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, muted.Render(d.Label), bar, legend)
}

// Split returns how many of width cells belong to part out of total
func Split(part, total, width int) int {
	if total <= 0 || part <= 0 {
		return 0
	}
	n := int(float64(part) / float64(total) * float64(width))
	if n > width {
		n = width
	}
	return n
}

// Percent is the rounded-down share of part in total
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return part * 100 / total
}
