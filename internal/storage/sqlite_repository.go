package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

const metaSavedAt = "saved_at"

type SQLiteRepository struct {
	db *sql.DB
}

var _ Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// foreign_keys is per connection
	db.SetMaxOpenConns(1)
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) Load(ctx context.Context) (*model.AppState, error) {
	var savedAt string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = ?`, metaSavedAt).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	tasks, err := r.loadTasks(ctx)
	if err != nil {
		return nil, err
	}
	plan, err := r.loadPlan(ctx)
	if err != nil {
		return nil, err
	}
	state := model.AppState{Tasks: tasks, Plan: plan}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return &state, nil
}

func (r *SQLiteRepository) loadTasks(ctx context.Context) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, freq_days, last_done, est_min
		FROM tasks ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Task, 0)
	index := make(map[string]int)
	for rows.Next() {
		task, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		index[task.ID] = len(out)
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hist, err := r.db.QueryContext(ctx, `
		SELECT task_id, done_on, actual_minutes
		FROM task_history ORDER BY task_id ASC, seq ASC`)
	if err != nil {
		return nil, err
	}
	defer hist.Close()
	for hist.Next() {
		var taskID, doneOn string
		var minutes int
		if err := hist.Scan(&taskID, &doneOn, &minutes); err != nil {
			return nil, err
		}
		day, err := parseDate(doneOn)
		if err != nil {
			return nil, err
		}
		i, ok := index[taskID]
		if !ok {
			continue
		}
		out[i].History = append(out[i].History, model.Completion{Date: day, ActualMinutes: minutes})
	}
	return out, hist.Err()
}

func (r *SQLiteRepository) loadPlan(ctx context.Context) (*model.DailyPlan, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT plan_date FROM daily_plan WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	day, err := parseDate(raw)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT task_id, completed FROM daily_plan_items ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plan := model.DailyPlan{Date: day, PickedIDs: []string{}, CompletedIDs: []string{}}
	for rows.Next() {
		var id string
		var completed int
		if err := rows.Scan(&id, &completed); err != nil {
			return nil, err
		}
		plan.PickedIDs = append(plan.PickedIDs, id)
		if completed == 1 {
			plan.CompletedIDs = append(plan.CompletedIDs, id)
		}
	}
	return &plan, rows.Err()
}

// Save replaces the stored snapshot in a single transaction.
func (r *SQLiteRepository) Save(ctx context.Context, state model.AppState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range []string{
		`DELETE FROM daily_plan_items`,
		`DELETE FROM daily_plan`,
		`DELETE FROM task_history`,
		`DELETE FROM tasks`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	for pos, t := range state.Tasks {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO tasks (id, position, name, freq_days, last_done, est_min)
			VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, pos, t.Name, t.FreqDays, t.LastDone.String(), t.EstMin,
		); err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
		for seq, c := range t.History {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO task_history (task_id, seq, done_on, actual_minutes)
				VALUES (?, ?, ?, ?)`,
				t.ID, seq, c.Date.String(), c.ActualMinutes,
			); err != nil {
				return fmt.Errorf("insert history for %s: %w", t.ID, err)
			}
		}
	}

	if p := state.Plan; p != nil {
		if _, err := tx.ExecContext(ctx, `INSERT INTO daily_plan (id, plan_date) VALUES (1, ?)`, p.Date.String()); err != nil {
			return fmt.Errorf("insert daily plan: %w", err)
		}
		for pos, id := range p.PickedIDs {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO daily_plan_items (position, task_id, completed)
				VALUES (?, ?, ?)`,
				pos, id, boolInt(p.IsCompleted(id)),
			); err != nil {
				return fmt.Errorf("insert plan item %s: %w", id, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO store_meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		metaSavedAt, time.Now().UTC().Format(sqliteTimeLayout),
	); err != nil {
		return err
	}
	return tx.Commit()
}

func parseDate(v string) (calendar.Date, error) {
	d, err := calendar.Parse(v)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	return d, nil
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var out model.Task
	var lastDone string
	if err := s.Scan(&out.ID, &out.Name, &out.FreqDays, &lastDone, &out.EstMin); err != nil {
		return model.Task{}, err
	}
	day, err := parseDate(lastDone)
	if err != nil {
		return model.Task{}, err
	}
	out.LastDone = day
	out.History = []model.Completion{}
	return out, nil
}
