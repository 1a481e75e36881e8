package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/qcalc/internal/metrics"
)

// historySamples is the default number of CPU and memory samples kept.
const historySamples = 30

// MetricsModel is the resource panel: runtime memory, system load with
// sparklines, the q-Jordan memo table and the cost of the last batch.
type MetricsModel struct {
	mem        metrics.MemorySnapshot
	cpuHistory *RingBuffer
	memHistory *RingBuffer
	load1      float64
	cache      CacheStatsMsg
	lastAlloc  *metrics.Allocation
	width      int
	height     int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpuHistory: NewRingBuffer(historySamples),
		memHistory: NewRingBuffer(historySamples),
	}
}

// SetSize updates dimensions and fits the sparklines to the new width.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	if n := m.sparklineWidth(); n > 0 {
		m.cpuHistory.Resize(n)
		m.memHistory.Resize(n)
	}
}

// sparklineWidth is the panel width minus borders, padding, label and
// percentage.
func (m MetricsModel) sparklineWidth() int {
	return m.width - 4 - 5 - 7
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = metrics.MemorySnapshot(msg)
}

// UpdateSysStats appends a system sample to the sparklines.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpuHistory.Push(msg.CPUPercent)
	m.memHistory.Push(msg.MemPercent)
	m.load1 = msg.Load1
}

// UpdateCacheStats stores a q-Jordan cache sample.
func (m *MetricsModel) UpdateCacheStats(msg CacheStatsMsg) {
	m.cache = msg
}

// SetLastAllocation records the allocations of the last finished batch.
func (m *MetricsModel) SetLastAllocation(a metrics.Allocation) {
	m.lastAlloc = &a
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows []string
	rows = append(rows, sectionTitleStyle.Render("Resources"))

	colWidth := max((m.width-4)/2, 1)
	rows = append(rows,
		formatMetricCol("Heap:", metrics.FormatBytes(m.mem.HeapAlloc)+" / "+metrics.FormatBytes(m.mem.HeapSys), colWidth)+
			formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.Goroutines), colWidth)+
			formatMetricCol("Load:", fmt.Sprintf("%.2f", m.load1), colWidth),
	)

	if w := m.sparklineWidth(); w > 0 {
		rows = append(rows,
			sparklineRow("CPU", cpuSparklineStyle.Render(RenderSparkline(m.cpuHistory.Slice(), w)), m.cpuHistory.Last()),
			sparklineRow("MEM", memSparklineStyle.Render(RenderSparkline(m.memHistory.Slice(), w)), m.memHistory.Last()),
		)
	}

	rows = append(rows, formatMetricCol("Jordan:", fmt.Sprintf("%d entries, %d hits, %d misses",
		m.cache.Entries, m.cache.Hits, m.cache.Misses), m.width-4))

	if m.lastAlloc != nil {
		rows = append(rows, formatMetricCol("Last run:", fmt.Sprintf("%s in %d objects, %d GC",
			metrics.FormatBytes(m.lastAlloc.Bytes), m.lastAlloc.Objects, m.lastAlloc.GCs), m.width-4))
	}

	style := panelStyle.Width(max(m.width-2, 0))
	if m.height > 2 {
		style = style.Height(m.height - 2)
	}
	return style.Render(strings.Join(rows, "\n"))
}

func sparklineRow(label, line string, last float64) string {
	return labelStyle.Render(fmt.Sprintf("%-4s ", label)) + line + valueStyle.Render(fmt.Sprintf(" %5.1f%%", last))
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf("%s %s",
		labelStyle.Render(fmt.Sprintf("%-11s", label)),
		valueStyle.Render(value))
	// Pad to fixed column width using lipgloss-aware width
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
