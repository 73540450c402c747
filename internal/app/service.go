// Package app holds the in-memory state for one session and persists it after
// every transition. Both the CLI and the TUI drive chores through a Service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sandeepkv93/chored/internal/backup"
	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/config"
	"github.com/sandeepkv93/chored/internal/dailyplan"
	"github.com/sandeepkv93/chored/internal/importer"
	"github.com/sandeepkv93/chored/internal/model"
	"github.com/sandeepkv93/chored/internal/planner"
	"github.com/sandeepkv93/chored/internal/storage"
)

var (
	ErrNotLoaded    = errors.New("app: state not loaded")
	ErrAmbiguousRef = errors.New("app: task reference is ambiguous")
	ErrUnknownRef   = errors.New("app: no task matches reference")
)

type Options struct {
	Store      storage.Store
	Clock      calendar.Clock
	IDs        importer.IDGenerator
	Logger     *slog.Logger
	Budget     int
	ConfigPath string
	Now        func() time.Time
}

type Service struct {
	store      storage.Store
	clock      calendar.Clock
	ids        importer.IDGenerator
	log        *slog.Logger
	now        func() time.Time
	configPath string

	budget int
	state  model.AppState
	loaded bool
}

func New(opts Options) *Service {
	s := &Service{
		store:      opts.Store,
		clock:      opts.Clock,
		ids:        opts.IDs,
		log:        opts.Logger,
		now:        opts.Now,
		configPath: opts.ConfigPath,
		budget:     config.ClampBudget(opts.Budget),
	}
	if s.clock == nil {
		s.clock = calendar.SystemClock{}
	}
	if s.ids == nil {
		s.ids = importer.UUIDGenerator{}
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.Budget == 0 {
		s.budget = config.DefaultBudgetMin
	}
	return s
}

// Load reads the stored state. An empty store yields an empty collection.
func (s *Service) Load(ctx context.Context) error {
	stored, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if stored == nil {
		s.state = model.AppState{Tasks: []model.Task{}}
	} else {
		s.state = *stored
	}
	s.loaded = true
	s.log.Debug("state loaded", "tasks", len(s.state.Tasks), "has_plan", s.state.Plan != nil)
	return nil
}

func (s *Service) Today() calendar.Date { return s.clock.Today() }

func (s *Service) Budget() int { return s.budget }

// State returns a copy of the current state.
func (s *Service) State() model.AppState { return s.state.Clone() }

func (s *Service) Phase() dailyplan.Phase { return dailyplan.Status(s.state, s.Today()) }

func (s *Service) Remaining() []model.Task { return dailyplan.Remaining(s.state, s.Today()) }

func (s *Service) Progress() dailyplan.Progress { return dailyplan.ProgressFor(s.state, s.Today()) }

// Ranking scores every task for today in plan order.
func (s *Service) Ranking() []planner.Scored { return planner.Rank(s.state.Tasks, s.Today()) }

// commit persists next and only then makes it current.
func (s *Service) commit(ctx context.Context, next model.AppState) error {
	if !s.loaded {
		return ErrNotLoaded
	}
	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error("save state failed", "err", err)
		return fmt.Errorf("save state: %w", err)
	}
	s.state = next
	return nil
}

// Plan makes sure today's plan exists, rebuilding it when force is set.
func (s *Service) Plan(ctx context.Context, force bool) (bool, error) {
	if !s.loaded {
		return false, ErrNotLoaded
	}
	today := s.Today()
	next, built := dailyplan.EnsurePlan(s.state, today, s.budget, force)
	if !built {
		return false, nil
	}
	if err := s.commit(ctx, next); err != nil {
		return false, err
	}
	s.log.Info("plan built", "date", today.String(), "budget", s.budget,
		"picked", len(next.Plan.PickedIDs), "forced", force)
	return true, nil
}

// Complete records id as done today. Non-positive minutes fall back to the
// task's current estimate.
func (s *Service) Complete(ctx context.Context, id string, minutes int) (model.Task, error) {
	if !s.loaded {
		return model.Task{}, ErrNotLoaded
	}
	if minutes <= 0 {
		if t, ok := s.state.TaskByID(id); ok {
			minutes = t.EstMin
		}
	}
	today := s.Today()
	next, err := dailyplan.MarkComplete(s.state, today, id, minutes)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return model.Task{}, err
	}
	t, _ := next.TaskByID(id)
	s.log.Info("task completed", "task_id", id, "date", today.String(),
		"actual_minutes", minutes, "estimate", t.EstMin)
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, ok := s.state.TaskByID(id); !ok {
		return fmt.Errorf("%w: %q", dailyplan.ErrTaskNotFound, id)
	}
	if err := s.commit(ctx, dailyplan.RemoveTask(s.state, id)); err != nil {
		return err
	}
	s.log.Info("task deleted", "task_id", id)
	return nil
}

func (s *Service) Edit(ctx context.Context, id string, edit model.TaskEdit) (model.Task, error) {
	next, err := dailyplan.EditTask(s.state, id, edit)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return model.Task{}, err
	}
	t, _ := next.TaskByID(id)
	s.log.Info("task edited", "task_id", id)
	return t, nil
}

// NewChore describes a task to add. A zero LastDone means today.
type NewChore struct {
	Name     string
	FreqDays int
	LastDone calendar.Date
	EstMin   int
}

func (s *Service) Add(ctx context.Context, in NewChore) (model.Task, error) {
	lastDone := in.LastDone
	if lastDone.IsZero() {
		lastDone = s.Today()
	}
	est := in.EstMin
	if est == 0 {
		est = model.DefaultEstMin
	}
	task := model.NewTask(s.ids.NewID(), in.Name, in.FreqDays, lastDone, est)
	next, err := dailyplan.AddTask(s.state, task)
	if err != nil {
		return model.Task{}, err
	}
	if err := s.commit(ctx, next); err != nil {
		return model.Task{}, err
	}
	s.log.Info("task added", "task_id", task.ID, "name", task.Name)
	return task, nil
}

// Import replaces every task with the parsed rows and discards the plan.
// Nothing changes when no row is usable.
func (s *Service) Import(ctx context.Context, text string) (importer.Result, error) {
	res, err := importer.Parse(text, s.ids)
	if err != nil {
		return res, err
	}
	if err := s.commit(ctx, dailyplan.ReplaceTasks(s.state, res.Tasks)); err != nil {
		return importer.Result{}, err
	}
	s.log.Info("tasks imported", "tasks", len(res.Tasks), "skipped", res.Skipped)
	return res, nil
}

// Export returns the snapshot document and its suggested file name.
func (s *Service) Export() ([]byte, string, error) {
	data, err := backup.Export(s.state, s.now())
	if err != nil {
		return nil, "", err
	}
	return data, backup.Filename(s.Today()), nil
}

// Restore swaps in a snapshot. A rejected document leaves state untouched.
func (s *Service) Restore(ctx context.Context, data []byte) error {
	restored, err := backup.Restore(data)
	if err != nil {
		s.log.Warn("restore rejected", "err", err)
		return err
	}
	if err := s.commit(ctx, restored); err != nil {
		return err
	}
	s.log.Info("state restored", "tasks", len(restored.Tasks), "has_plan", restored.Plan != nil)
	return nil
}

// SetBudget changes the minute budget for future plans and records it in the
// config file when one is configured. Today's plan is kept.
func (s *Service) SetBudget(minutes int) (int, error) {
	clamped := config.ClampBudget(minutes)
	if err := config.WriteBudget(s.configPath, clamped); err != nil {
		return s.budget, err
	}
	s.budget = clamped
	s.log.Info("budget changed", "budget", clamped)
	return clamped, nil
}

// Resolve finds a task by exact id, case-insensitive name, or a unique id or
// name prefix.
func (s *Service) Resolve(ref string) (model.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return model.Task{}, ErrUnknownRef
	}
	if t, ok := s.state.TaskByID(ref); ok {
		return t.Clone(), nil
	}
	lower := strings.ToLower(ref)
	var byName, byPrefix []model.Task
	for _, t := range s.state.Tasks {
		name := strings.ToLower(t.Name)
		switch {
		case name == lower:
			byName = append(byName, t)
		case strings.HasPrefix(t.ID, ref) || strings.HasPrefix(name, lower):
			byPrefix = append(byPrefix, t)
		}
	}
	for _, matches := range [][]model.Task{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0].Clone(), nil
		default:
			return model.Task{}, fmt.Errorf("%w: %q matches %d tasks", ErrAmbiguousRef, ref, len(matches))
		}
	}
	return model.Task{}, fmt.Errorf("%w: %q", ErrUnknownRef, ref)
}

// Close releases the store.
func (s *Service) Close() error {
	if s.store == nil {
		return nil
	}
	return s.store.Close()
}
