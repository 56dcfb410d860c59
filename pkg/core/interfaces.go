package core

// Logger interface for render progress logging. *log.Logger satisfies it.
type Logger interface {
	Printf(format string, args ...interface{})
}
