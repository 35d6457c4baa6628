package alarm

import "fmt"

// DecodeError is returned when an SNS delivery does not carry a usable alarm.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("decode alarm: %s: %v", e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("decode alarm: missing required field %s", e.Field)
	default:
		return fmt.Sprintf("decode alarm: %v", e.Err)
	}
}

func (e *DecodeError) Cause() error { return e.Err }

func (e *DecodeError) Unwrap() error { return e.Err }
