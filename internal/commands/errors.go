package commands

// UserError is a message for the connected controller, not a system failure:
// bad arguments, unknown names, invalid usage. Sessions print it and keep
// going; any other error ends the session.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
