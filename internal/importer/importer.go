// Package importer turns pasted spreadsheet rows into tasks.
//
// Each line is tab separated when it contains a tab and comma separated
// otherwise, with fields: name, frequency in days, last done date, and an
// optional estimate in minutes.
package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sandeepkv93/chored/internal/calendar"
	"github.com/sandeepkv93/chored/internal/model"
)

var ErrNoRows = errors.New("importer: no usable rows")

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }

// SequenceGenerator yields prefix-1, prefix-2, ...
type SequenceGenerator struct {
	Prefix string
	next   int
}

func (g *SequenceGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("%s-%d", g.Prefix, g.next)
}

type Result struct {
	Tasks   []model.Task
	Skipped int
}

// Parse reads text row by row. Rows without a name or a parseable date are
// dropped and counted in Skipped; ErrNoRows is returned when nothing is left.
func Parse(text string, ids IDGenerator) (Result, error) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	var res Result
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		task, ok := parseRow(line, ids)
		if !ok {
			res.Skipped++
			continue
		}
		res.Tasks = append(res.Tasks, task)
	}
	if len(res.Tasks) == 0 {
		return res, fmt.Errorf("%w (%d skipped)", ErrNoRows, res.Skipped)
	}
	return res, nil
}

func parseRow(line string, ids IDGenerator) (model.Task, bool) {
	sep := ","
	if strings.Contains(line, "\t") {
		sep = "\t"
	}
	fields := strings.Split(line, sep)
	for len(fields) < 4 {
		fields = append(fields, "")
	}
	for i := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(fields[i]), `"`)
	}

	name := fields[0]
	if name == "" {
		return model.Task{}, false
	}
	lastDone, ok := calendar.ParseFlexible(fields[2])
	if !ok {
		return model.Task{}, false
	}
	freq := intOr(fields[1], model.MinFreqDays)
	est := intOr(fields[3], model.DefaultEstMin)
	return model.NewTask(ids.NewID(), name, freq, lastDone, est), true
}

func intOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
