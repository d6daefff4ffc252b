package replay

import (
	"errors"
	"fmt"
	"io"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/angeloszaimis/htmllog/pkg/htmllog"
)

const (
	OpCreate         = "create"
	OpClose          = "close"
	OpInfo           = "info"
	OpError          = "error"
	OpDebug          = "debug"
	OpErrorException = "error_exception"
	OpDebugException = "debug_exception"
)

var ops = []interface{}{
	OpCreate, OpClose, OpInfo, OpError, OpDebug, OpErrorException, OpDebugException,
}

// Script is a recorded sequence of logger operations.
type Script struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one operation. Section is the section key.
type Step struct {
	Op      string `yaml:"op"`
	Section string `yaml:"section"`
	Name    string `yaml:"name"`
	Value   string `yaml:"value"`
	Pause   string `yaml:"pause"`
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("replay: empty script")
		}
		return nil, fmt.Errorf("replay: decode: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("replay: invalid script: %w", err)
	}
	return &s, nil
}

func (s Script) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Title, validation.Match(htmllog.TitlePattern)),
		validation.Field(&s.Steps, validation.Required),
	)
}

func (s Step) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Op, validation.Required, validation.In(ops...)),
		validation.Field(&s.Section, validation.When(s.targetsSection(), validation.Required)),
		validation.Field(&s.Name, validation.When(s.Op == OpCreate, validation.Required)),
		validation.Field(&s.Pause, validation.By(validateDuration)),
	)
}

func (s Step) targetsSection() bool {
	switch s.Op {
	case OpCreate, OpClose, OpInfo, OpError, OpDebug:
		return true
	}
	return false
}

// PauseDuration returns the parsed pause, zero when unset.
func (s Step) PauseDuration() time.Duration {
	if s.Pause == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.Pause)
	return d
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if durationStr == "" {
		return nil
	}

	d, err := time.ParseDuration(durationStr)
	if err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 250ms, 2s)")
	}
	if d < 0 {
		return validation.NewError("validation_negative_duration", "must not be negative")
	}

	return nil
}
