package vlist

// Logger receives the warnings and errors the core and its features emit
// (spec.md §4.9, §7). A nil Logger installs noopLogger, matching the
// teacher's hook-injection style where every side-effecting seam (here,
// logging) is a small interface the host wires up rather than a concrete
// dependency on a specific logging package.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Warnf(string, ...interface{})  {}
func (noopLogger) Errorf(string, ...interface{}) {}
