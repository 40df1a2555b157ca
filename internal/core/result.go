package core

// Result is the value returned by a resource Apply. It carries the
// human readable message next to the changed flag so the engine can
// report without inspecting the resource again.
type Result struct {
	Changed bool
	Failed  bool
	Message string
	Error   error
}

// SuccessChange returns a successful result that mutated the system.
func SuccessChange(msg string) Result {
	return Result{Changed: true, Message: msg}
}

// SuccessNoChange returns a successful result that found the system
// already in the desired state.
func SuccessNoChange(msg string) Result {
	return Result{Changed: false, Message: msg}
}

// Failure returns a failed result with the technical error attached.
func Failure(err error, msg string) Result {
	return Result{Failed: true, Message: msg, Error: err}
}
