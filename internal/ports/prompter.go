package ports

// Prompter asks the user for input on the terminal
type Prompter interface {
	// PromptChoice shows options numbered from 1 and returns the chosen option.
	// Invalid answers are re-prompted until input ends or the attempt limit is hit.
	PromptChoice(label string, options []string) (string, error)

	// PromptText returns the trimmed answer, or def when the answer is empty.
	PromptText(label string, def string) (string, error)
}

// Console shows status messages to the user
type Console interface {
	Heading(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Success(format string, args ...any)

	// Step announces the current entry of a batch, 1-based
	Step(current, total int, title string)
}
