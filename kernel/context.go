package kernel

import (
	"time"
)

// Context provides task-local access to kernel operations for one step.
type Context struct {
	k      *Kernel
	taskID TaskID

	sleep time.Duration
	exit  bool
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// Now returns the kernel clock reading.
func (c *Context) Now() time.Time {
	return c.k.clock.Now()
}

// Sleep suspends the task for d after the current step returns.
//
// d <= 0 is a plain yield: the task runs again on the next pass.
func (c *Context) Sleep(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.sleep = d
}

// Exit finishes the task after the current step returns.
func (c *Context) Exit() {
	c.exit = true
}

// Unpark makes another task runnable starting with the next pass.
func (c *Context) Unpark(id TaskID) {
	c.k.Unpark(id)
}

// Fatal aborts the kernel. It is used for collaborator failures, which the
// scheduler does not retry.
func (c *Context) Fatal(err error) {
	panic(err)
}
