package screenbuffer

import "errors"

// The three error tiers named by the error handling design: invalid
// arguments never touch state and are raised to the caller as panics;
// source-transient failures are caught at the pull boundary, logged, and the
// Fetch Loop keeps running; source-fatal failures end the Fetch Loop but
// leave Stop safe to call.
var (
	ErrInvalidArgument  = errors.New("logscope: invalid argument")
	ErrSourceTransient  = errors.New("logscope: record source transient failure")
	ErrSourceFatal      = errors.New("logscope: record source fatal failure")
	ErrAlreadyRunning   = errors.New("logscope: screen buffer already running")
)
