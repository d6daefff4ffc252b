package replay

import (
	"fmt"
	"time"
)

// Recorder is the part of htmllog.Logger a script drives.
type Recorder interface {
	CreateSection(name, key string) error
	CloseSection(key string) error
	Info(sectionKey, value string) error
	Error(sectionKey, value string) error
	Debug(sectionKey, value string) error
	ErrorException(message string) error
	DebugException(message string) error
}

// Runner applies scripts to a Recorder.
type Runner struct {
	sleep func(time.Duration)
}

// NewRunner returns a Runner that honours step pauses with time.Sleep.
func NewRunner() *Runner {
	return &Runner{sleep: time.Sleep}
}

// NewRunnerWithSleep returns a Runner that pauses through sleep.
func NewRunnerWithSleep(sleep func(time.Duration)) *Runner {
	return &Runner{sleep: sleep}
}

// Run executes the steps in order and stops at the first failure.
func (r *Runner) Run(rec Recorder, s *Script) error {
	for i, step := range s.Steps {
		if d := step.PauseDuration(); d > 0 {
			r.sleep(d)
		}
		if err := apply(rec, step); err != nil {
			return fmt.Errorf("replay: step %d (%s): %w", i+1, step.Op, err)
		}
	}
	return nil
}

func apply(rec Recorder, step Step) error {
	switch step.Op {
	case OpCreate:
		return rec.CreateSection(step.Name, step.Section)
	case OpClose:
		return rec.CloseSection(step.Section)
	case OpInfo:
		return rec.Info(step.Section, step.Value)
	case OpError:
		return rec.Error(step.Section, step.Value)
	case OpDebug:
		return rec.Debug(step.Section, step.Value)
	case OpErrorException:
		return rec.ErrorException(step.Value)
	case OpDebugException:
		return rec.DebugException(step.Value)
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}
