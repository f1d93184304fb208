package kernel

import "fmt"

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Task   string
	Value  any
	Stack  []byte
}

func (p *PanicInfo) Error() string {
	if err, ok := p.Value.(error); ok {
		return fmt.Sprintf("kernel: task %s: %v", p.Task, err)
	}
	return fmt.Sprintf("kernel: task %s panicked: %v", p.Task, p.Value)
}

func (p *PanicInfo) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

func (k *Kernel) fail(info PanicInfo) {
	if k.failure != nil {
		return
	}
	info.Stack = captureStack()
	k.failure = &info
	if k.panicHandler != nil {
		k.panicHandler(info)
	}
}
