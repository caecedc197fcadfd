package sim

import "log"

// TransitionLogger is a hook that prints every status transition.
type TransitionLogger struct {
	LogHookBase
}

// NewTransitionLogger returns a new TransitionLogger that writes into the
// given logger.
func NewTransitionLogger(logger *log.Logger) *TransitionLogger {
	h := new(TransitionLogger)
	h.Logger = logger
	return h
}

// Func writes the transition information into the logger.
func (h *TransitionLogger) Func(ctx HookCtx) {
	if ctx.Pos != HookPosTransition {
		return
	}

	p, ok := ctx.Item.(*Person)
	if !ok {
		return
	}

	from, _ := ctx.Detail.(Status)

	h.Logger.Printf("year %d, person %s, %s -> %s",
		p.StatusSince, p.ID, from, p.Status)
}
