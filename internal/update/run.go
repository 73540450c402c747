package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/chored/internal/app"
	"github.com/sandeepkv93/chored/internal/config"
	"github.com/sandeepkv93/chored/internal/scheduler"
)

// Run starts the interactive planner and blocks until the user quits. A
// rollover event is kept queued for every midnight so a session left open
// overnight picks up the new day's plan.
func Run(ctx context.Context, svc *app.Service, cfg config.Config) error {
	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	if _, err := engine.ScheduleRollover(time.Now()); err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}

	p := tea.NewProgram(NewModel(ctx, svc, engine), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
