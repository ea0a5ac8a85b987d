package loadgen

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"sync"
	"time"

	"dash0times/pkg/client"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mode controls the report output format.
type Mode int

const (
	ASCII Mode = iota
	Markdown
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "ascii":
		return ASCII, nil
	case "markdown", "md":
		return Markdown, nil
	}
	return ASCII, fmt.Errorf("unknown format %q", s)
}

type RouteStats struct {
	Name      string
	Count     int
	Failures  map[client.Category]int
	latencies []time.Duration
}

func (s *RouteStats) ErrorCount() int {
	total := 0
	for _, n := range s.Failures {
		total += n
	}
	return total
}

// Percentile returns the nearest-rank latency for p in (0, 1].
func (s *RouteStats) Percentile(p float64) time.Duration {
	if len(s.latencies) == 0 {
		return 0
	}
	sorted := slices.Clone(s.latencies)
	slices.Sort(sorted)

	rank := int(math.Ceil(p*float64(len(sorted)))) - 1
	rank = max(0, min(rank, len(sorted)-1))
	return sorted[rank]
}

// TopFailure returns the most frequent error category, or "" without errors.
func (s *RouteStats) TopFailure() client.Category {
	var top client.Category
	best := 0
	for cat, n := range s.Failures {
		if n > best || (n == best && cat < top) {
			top, best = cat, n
		}
	}
	return top
}

type Report struct {
	Elapsed time.Duration

	mu     sync.Mutex
	routes map[string]*RouteStats
}

func NewReport() *Report {
	return &Report{routes: map[string]*RouteStats{}}
}

func (r *Report) Record(route string, latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.routes[route]
	if !ok {
		s = &RouteStats{Name: route, Failures: map[client.Category]int{}}
		r.routes[route] = s
	}
	s.Count++
	s.latencies = append(s.latencies, latency)
	if err != nil {
		s.Failures[client.Categorize(err)]++
	}
}

// Routes returns the per-route stats sorted by name.
func (r *Report) Routes() []*RouteStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*RouteStats, 0, len(r.routes))
	for _, s := range r.routes {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Report) Total() int {
	total := 0
	for _, s := range r.Routes() {
		total += s.Count
	}
	return total
}

func (r *Report) Errors() int {
	total := 0
	for _, s := range r.Routes() {
		total += s.ErrorCount()
	}
	return total
}

// Render draws the report as a table, one row per route plus a totals footer.
func (r *Report) Render(mode Mode) string {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}

	w.AppendHeader(table.Row{"Route", "Requests", "Errors", "Error %", "p50", "p95", "Max", "Top failure"})
	for _, s := range r.Routes() {
		w.AppendRow(table.Row{
			s.Name,
			s.Count,
			s.ErrorCount(),
			errorRate(s.ErrorCount(), s.Count),
			millis(s.Percentile(0.5)),
			millis(s.Percentile(0.95)),
			millis(s.Percentile(1)),
			string(s.TopFailure()),
		})
	}
	w.AppendFooter(table.Row{"total", r.Total(), r.Errors(), errorRate(r.Errors(), r.Total()), "", "", "", ""})

	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func errorRate(errs, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(errs)*100/float64(total))
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}
