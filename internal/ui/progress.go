package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sortbench/internal/benchmark"
	"sortbench/internal/report"
)

const recentCells = 6

// CellMsg reports one finished cell together with run-wide counts.
type CellMsg struct {
	Result benchmark.RunResult
	Done   int
	Total  int
}

// DoneMsg ends the run.
type DoneMsg struct {
	Report *benchmark.Report
	Err    error
}

// ProgressModel shows a live view of a running benchmark.
type ProgressModel struct {
	Title    string
	Done     int
	Total    int
	Size     int
	Recent   []benchmark.RunResult
	Finished bool
	Quitting bool
	Report   *benchmark.Report
	Err      error

	progress progress.Model
	spinner  spinner.Model
	width    int
}

func NewProgressModel(title string, total int) ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return ProgressModel{
		Title:    title,
		Total:    total,
		progress: progress.New(progress.WithDefaultGradient()),
		spinner:  s,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progress.Width = msg.Width - 10
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		return m, nil

	case CellMsg:
		m.Done = msg.Done
		m.Total = msg.Total
		m.Size = msg.Result.Size
		m.Recent = append(m.Recent, msg.Result)
		if len(m.Recent) > recentCells {
			m.Recent = m.Recent[len(m.Recent)-recentCells:]
		}
		return m, nil

	case DoneMsg:
		m.Finished = true
		m.Report = msg.Report
		m.Err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m ProgressModel) Percent() float64 {
	if m.Total <= 0 {
		return 0
	}
	p := float64(m.Done) / float64(m.Total)
	if p > 1 {
		p = 1
	}
	return p
}

func (m ProgressModel) View() string {
	if m.Quitting || m.Finished {
		return ""
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(m.Title) + "\n\n")

	status := "waiting for first result"
	if m.Size > 0 || m.Done > 0 {
		status = fmt.Sprintf("sorting %s values", report.FormatSize(m.Size))
	}
	s.WriteString(fmt.Sprintf("%s %s (%d/%d)\n\n", m.spinner.View(), status, m.Done, m.Total))
	s.WriteString(m.progress.ViewAs(m.Percent()) + "\n\n")

	for _, r := range m.Recent {
		line := fmt.Sprintf("%-15s %10s  %-12s %s",
			r.Algorithm, report.FormatSize(r.Size), report.FormatTime(r.Time), r.Status)
		s.WriteString(statusStyle(r.Status).Render(line) + "\n")
	}

	s.WriteString(helpStyle.Render("(q) cancel"))
	return s.String()
}

// RunFunc runs a benchmark, reporting progress through obs.
type RunFunc func(ctx context.Context, obs benchmark.Observer) (*benchmark.Report, error)

// RunProgress drives run under a bubbletea program. Quitting the program
// cancels ctx for run and waits for it to return its partial report.
func RunProgress(ctx context.Context, title string, totalCells int, run RunFunc, opts ...tea.ProgramOption) (*benchmark.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, totalCells), opts...)
	obs := benchmark.NewProgressObserver(totalCells, func(r benchmark.RunResult, done, total int) {
		p.Send(CellMsg{Result: r, Done: done, Total: total})
	})

	type outcome struct {
		report *benchmark.Report
		err    error
	}
	result := make(chan outcome, 1)
	go func() {
		rep, err := run(ctx, obs)
		result <- outcome{rep, err}
		p.Send(DoneMsg{Report: rep, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-result
		return nil, fmt.Errorf("progress ui: %w", err)
	}
	cancel()
	out := <-result
	return out.report, out.err
}
