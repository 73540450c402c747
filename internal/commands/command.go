package commands

import (
	"fmt"
	"strconv"
	"strings"
)

type Type string

const (
	TypeDone   Type = "done"
	TypeBudget Type = "budget"
	TypeRegen  Type = "regen"
	TypeDelete Type = "delete"
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// DoneArgs.Minutes is zero when no duration was given.
type DoneArgs struct {
	Target  string
	Minutes int
}

type BudgetArgs struct {
	Minutes int
}

type DeleteArgs struct {
	Target string
}

// AddArgs.EstMin is zero when no estimate was given.
type AddArgs struct {
	Name     string
	FreqDays int
	EstMin   int
}

// EditArgs holds raw field values keyed by field name.
type EditArgs struct {
	Target string
	Fields map[string]string
}

var editFields = map[string]string{
	"name":     "name",
	"freq":     "freq",
	"freqdays": "freq",
	"every":    "freq",
	"last":     "last",
	"lastdone": "last",
	"est":      "est",
	"estimate": "est",
	"minutes":  "est",
}

type Command struct {
	Type   Type
	Raw    string
	Done   *DoneArgs
	Budget *BudgetArgs
	Delete *DeleteArgs
	Add    *AddArgs
	Edit   *EditArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeDone:
		return parseDone(input, args)
	case TypeBudget:
		return parseBudget(input, args)
	case TypeRegen:
		return Command{Type: TypeRegen, Raw: input}, nil
	case TypeDelete:
		return parseDelete(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit:
		return parseEdit(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseDone(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "done requires a task"}
	}
	out := DoneArgs{}
	if len(args) > 1 {
		if n, ok := positiveInt(args[len(args)-1]); ok {
			out.Minutes = n
			args = args[:len(args)-1]
		}
	}
	out.Target = strings.Join(args, " ")
	return Command{Type: TypeDone, Raw: raw, Done: &out}, nil
}

func parseBudget(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "budget requires minutes"}
	}
	n, ok := positiveInt(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("budget must be a positive number of minutes, got %q", args[0])}
	}
	return Command{Type: TypeBudget, Raw: raw, Budget: &BudgetArgs{Minutes: n}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: strings.Join(args, " ")}}, nil
}

// parseAdd reads trailing numbers as frequency then estimate.
func parseAdd(raw string, args []string) (Command, error) {
	var nums []int
	for len(args) > 0 && len(nums) < 2 {
		n, ok := positiveInt(args[len(args)-1])
		if !ok {
			break
		}
		nums = append([]int{n}, nums...)
		args = args[:len(args)-1]
	}
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" || len(nums) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a name and a frequency in days"}
	}
	out := AddArgs{Name: name, FreqDays: nums[0]}
	if len(nums) == 2 {
		out.EstMin = nums[1]
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

// parseEdit splits "edit <task> key=value ...". Words without '=' after the
// first field extend the previous value so names may contain spaces.
func parseEdit(raw string, args []string) (Command, error) {
	var target []string
	fields := map[string]string{}
	last := ""
	for _, arg := range args {
		key, value, found := strings.Cut(arg, "=")
		if !found {
			if last == "" {
				target = append(target, arg)
			} else {
				fields[last] += " " + arg
			}
			continue
		}
		canonical, ok := editFields[strings.ToLower(key)]
		if !ok {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown field %q, use name, freq, last or est", key)}
		}
		fields[canonical] = value
		last = canonical
	}
	if len(target) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires a task"}
	}
	if len(fields) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "edit requires at least one field=value"}
	}
	return Command{Type: TypeEdit, Raw: raw, Edit: &EditArgs{Target: strings.Join(target, " "), Fields: fields}}, nil
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
