package domain

// LaunchSpec describes how to start the application process.
type LaunchSpec struct {
	// Program is the interpreter executable.
	Program string
	// Args excludes the program name.
	Args []string
	// Env is the full environment in KEY=VALUE form.
	Env []string
	// Dir is the working directory.
	Dir string
}

// ExitStatus describes how a process terminated.
type ExitStatus struct {
	// Code is the exit code, or -1 when the process was terminated by a signal.
	Code int
	// Signal names the terminating signal, empty when the process exited normally.
	Signal string
	// Err is set when waiting on the process failed for a reason other than a non-zero exit.
	Err error
}

// Success reports whether the process exited cleanly.
func (s ExitStatus) Success() bool {
	return s.Code == 0 && s.Signal == "" && s.Err == nil
}
