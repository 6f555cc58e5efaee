package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/hostpulse/collectors/sysmetrics"
	"gitlab.com/tinyland/lab/hostpulse/config"
	"gitlab.com/tinyland/lab/hostpulse/display/tui"
	"gitlab.com/tinyland/lab/hostpulse/monitor"
)

// newTUIModel builds the dashboard model for a running monitor.
func newTUIModel(ctx context.Context, sampler *sysmetrics.OSSampler, mon *monitor.Monitor, cfg *config.Config) tui.Model {
	return tui.NewModel(tui.Options{
		Store:     mon.Store(),
		Refresher: mon,
		Interval:  mon.Interval(),
		Host:      sampler.HostInfo(ctx),
		Theme:     cfg.Display.Theme,
		Warning:   cfg.Display.Warning,
		Danger:    cfg.Display.Danger,
	})
}

// runTUI runs the interactive dashboard until the user quits or ctx is
// cancelled.
func runTUI(ctx context.Context, sampler *sysmetrics.OSSampler, mon *monitor.Monitor, cfg *config.Config) error {
	model := newTUIModel(ctx, sampler, mon, cfg)
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
