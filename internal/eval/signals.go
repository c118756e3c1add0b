package eval

// Non-local control flow (spec.md §9: "implement as typed unwinds") is
// carried as a handful of signal fields on Interpreter, checked by the
// caller after every statement executes - the same shape the teacher
// interpreter uses for its own break/continue/exit flags, generalized here
// to Lunite's four signals (return, break, advance, leap). Actual
// exceptions (anything raised by a runtime error, or attempt/rescue's own
// thrown errors) instead travel as ordinary Go `error` return values
// wrapping *errors.LuniteError, since those need to carry a message AND be
// catchable by name, not just observed as a flag.
//
// A statement-execution loop must, after each statement:
//  1. propagate any non-nil error immediately (an exception in flight);
//  2. otherwise stop advancing through the current statement list the
//     moment any of sigReturn/sigBreak/sigAdvance/sigLeap is set, handing
//     the decision of whether to consume or re-propagate the signal to
//     whichever construct (loop, function call, block) is positioned to
//     own it.
type controlSignals struct {
	sigReturn bool
	sigBreak  bool
	sigAdvance bool
	sigLeap    bool

	returnValue Value

	leapTargetName string
	leapTargetLine int
	leapByLine     bool
}

func (c *controlSignals) anySet() bool {
	return c.sigReturn || c.sigBreak || c.sigAdvance || c.sigLeap
}

func (c *controlSignals) clearLoopSignals() {
	c.sigBreak = false
	c.sigAdvance = false
}

func (c *controlSignals) clearReturn() {
	c.sigReturn = false
	c.returnValue = nil
}

func (c *controlSignals) clearLeap() {
	c.sigLeap = false
	c.leapTargetName = ""
	c.leapTargetLine = 0
	c.leapByLine = false
}
