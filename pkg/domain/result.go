package domain

// StepResult is the outcome of one state-machine step or handler
// invocation: what to say, whether to keep the session open, and any
// navigation the engine should perform afterwards.
//
// When NextPage is set the engine navigates and re-renders the
// destination page, discarding Message. Handlers that want their own
// text shown must not also request navigation.
type StepResult struct {
	Message         string
	ContinueSession bool

	// NextPage asks the engine to navigate to this page after the step.
	NextPage string

	// GoHome asks the engine to reset to the menu root.
	GoHome bool
}

// Continue keeps the session open with a message.
func Continue(message string) StepResult {
	return StepResult{Message: message, ContinueSession: true}
}

// ContinueTo keeps the session open and navigates to a page.
func ContinueTo(message, nextPage string) StepResult {
	return StepResult{Message: message, ContinueSession: true, NextPage: nextPage}
}

// End closes the session with a final message.
func End(message string) StepResult {
	return StepResult{Message: message}
}

// Home resets the session to the menu root.
func Home() StepResult {
	return StepResult{GoHome: true, ContinueSession: true}
}
