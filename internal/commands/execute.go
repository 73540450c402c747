package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Done   func(DoneArgs) (Result, error)
	Budget func(BudgetArgs) (Result, error)
	Regen  func() (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Add    func(AddArgs) (Result, error)
	Edit   func(EditArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Done(*cmd.Done)
	case TypeBudget:
		if handlers.Budget == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Budget(*cmd.Budget)
	case TypeRegen:
		if handlers.Regen == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Regen()
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Delete(*cmd.Delete)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Edit)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
