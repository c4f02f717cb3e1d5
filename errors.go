package privatejets

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNoTraceData means the trace was empty, or none of its points could be used.
	ErrNoTraceData = errors.New("no trace data")

	// ErrOutOfOrderTimestamp means a trace went backwards in time.
	ErrOutOfOrderTimestamp = errors.New("out of order timestamp")
)

// OutOfOrderError pinpoints where a trace stopped being time ordered.
type OutOfOrderError struct {
	Index int       // index of the offending point
	Prev  time.Time // timestamp of the point before it
	Got   time.Time
}

func (e *OutOfOrderError) Error() string {
	return fmt.Sprintf("%v: point %d at %s precedes %s", ErrOutOfOrderTimestamp, e.Index,
		e.Got.Format(time.RFC3339), e.Prev.Format(time.RFC3339))
}

func (e *OutOfOrderError) Unwrap() error { return ErrOutOfOrderTimestamp }
