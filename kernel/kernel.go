package kernel

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

const maxTasks = 8

type TaskID uint8

// NoTask is returned by AddTask when the task table is full.
const NoTask TaskID = 0xFF

// Task is a cooperative unit of execution.
//
// Step runs one iteration of the task loop and must return promptly. A task
// that returns without calling Context.Sleep yields with zero delay.
type Task interface {
	Step(*Context)
}

// Named is implemented by tasks that want a name in logs and panic reports.
type Named interface {
	Name() string
}

type taskState struct {
	task   Task
	name   string
	parked bool
	done   bool
	wakeAt time.Time
}

// Kernel is a single-threaded cooperative scheduler.
//
// All tasks run on the goroutine that calls Pass or Run, so state shared
// between tasks needs no locking as long as no task suspends mid-update.
type Kernel struct {
	clock clockwork.Clock

	tasks     [maxTasks]taskState
	taskCount TaskID

	panicHandler func(PanicInfo)
	failure      *PanicInfo
}

// New creates a kernel driven by clock.
func New(clock clockwork.Clock) *Kernel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Kernel{clock: clock}
}

// Clock returns the kernel timebase.
func (k *Kernel) Clock() clockwork.Clock { return k.clock }

// AddTask registers a runnable task and returns its ID.
func (k *Kernel) AddTask(t Task) TaskID {
	return k.add(t, false)
}

// AddParked registers a task that does not run until Unpark is called.
//
// Every task is created at startup; parking is how later phases are gated.
func (k *Kernel) AddParked(t Task) TaskID {
	return k.add(t, true)
}

func (k *Kernel) add(t Task, parked bool) TaskID {
	if t == nil || k.taskCount >= maxTasks {
		return NoTask
	}
	id := k.taskCount
	k.taskCount++

	name := fmt.Sprintf("task%d", id)
	if n, ok := t.(Named); ok {
		name = n.Name()
	}
	k.tasks[id] = taskState{task: t, name: name, parked: parked}
	return id
}

// Unpark makes a parked task runnable.
func (k *Kernel) Unpark(id TaskID) {
	if id >= k.taskCount {
		return
	}
	k.tasks[id].parked = false
}

// TaskName returns the registered name of a task.
func (k *Kernel) TaskName(id TaskID) string {
	if id >= k.taskCount {
		return ""
	}
	return k.tasks[id].name
}

// Done reports whether the task has exited.
func (k *Kernel) Done(id TaskID) bool {
	if id >= k.taskCount {
		return true
	}
	return k.tasks[id].done
}

// SetPanicHandler installs the handler invoked once when a task panics.
//
// The handler must not panic.
func (k *Kernel) SetPanicHandler(fn func(PanicInfo)) {
	k.panicHandler = fn
}

// Err returns a non-nil error once a task has panicked. The kernel runs no
// further steps after that.
func (k *Kernel) Err() error {
	if k.failure == nil {
		return nil
	}
	return k.failure
}

// Pass runs every runnable task once, in registration order, and returns how
// many steps ran.
func (k *Kernel) Pass() int {
	if k.failure != nil {
		return 0
	}

	ran := 0
	for id := TaskID(0); id < k.taskCount; id++ {
		st := &k.tasks[id]
		if st.task == nil || st.done || st.parked {
			continue
		}
		if !st.wakeAt.IsZero() {
			if k.clock.Now().Before(st.wakeAt) {
				continue
			}
			st.wakeAt = time.Time{}
		}

		ctx := &Context{k: k, taskID: id}
		if !k.step(st, ctx) {
			return ran
		}
		ran++

		if ctx.exit {
			st.done = true
			continue
		}
		if ctx.sleep > 0 {
			st.wakeAt = k.clock.Now().Add(ctx.sleep)
		}
	}
	return ran
}

func (k *Kernel) step(st *taskState, ctx *Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			k.fail(PanicInfo{TaskID: ctx.taskID, Task: st.name, Value: r})
			ok = false
		}
	}()
	st.task.Step(ctx)
	return true
}

// NextWake returns the earliest deadline among sleeping tasks. ready is true
// when some task can run right away.
func (k *Kernel) NextWake() (at time.Time, ready bool) {
	for id := TaskID(0); id < k.taskCount; id++ {
		st := &k.tasks[id]
		if st.task == nil || st.done || st.parked {
			continue
		}
		if st.wakeAt.IsZero() {
			return time.Time{}, true
		}
		if at.IsZero() || st.wakeAt.Before(at) {
			at = st.wakeAt
		}
	}
	return at, false
}

// Run executes passes until ctx is cancelled or a task panics.
//
// When every task is asleep it waits for the earliest deadline. When some task
// yields with zero delay it waits idle between passes; idle <= 0 busy-polls.
func (k *Kernel) Run(ctx context.Context, idle time.Duration) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		k.Pass()
		if err := k.Err(); err != nil {
			return err
		}

		wait := idle
		if at, ready := k.NextWake(); !ready && !at.IsZero() {
			wait = at.Sub(k.clock.Now())
		}
		if wait <= 0 {
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-k.clock.After(wait):
		}
	}
}
