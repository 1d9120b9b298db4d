// FILE: lixenwraith/rlog/pool/task.go
package pool

// Task is a unit of work handed to the pool. The pool drops its reference after Execute returns.
type Task interface {
	Execute()
}

// TaskFunc adapts a function to Task
type TaskFunc func()

func (f TaskFunc) Execute() { f() }

// namedTask carries a name for panic reports
type namedTask struct {
	name string
	fn   func()
}

func (t namedTask) Execute()     { t.fn() }
func (t namedTask) Name() string { return t.name }

// Named wraps fn as a Task reported under name
func Named(name string, fn func()) Task {
	return namedTask{name: name, fn: fn}
}

// taskName returns the name of t when it has one
func taskName(t Task) string {
	if n, ok := t.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}

// job is a queued task plus the completion event of a blocking submitter
type job struct {
	task Task
	done *Event
}

// release wakes a blocking submitter, if any
func (j job) release() {
	if j.done != nil {
		j.done.Set()
	}
}
