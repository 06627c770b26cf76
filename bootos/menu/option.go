package menu

import "fmt"

// Option is one of the fixed menu entries.
type Option uint8

const (
	Option1 Option = iota
	Option2
	Option3
)

// DefaultOptions returns every option in menu order.
func DefaultOptions() []Option {
	return []Option{Option1, Option2, Option3}
}

func (o Option) String() string {
	switch o {
	case Option1:
		return "Option1"
	case Option2:
		return "Option2"
	case Option3:
		return "Option3"
	default:
		return fmt.Sprintf("Option(%d)", uint8(o))
	}
}

// ParseOption returns the option named s.
func ParseOption(s string) (Option, error) {
	for _, o := range DefaultOptions() {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("menu: unknown option %q", s)
}

// State is the controller's position in the menu state machine.
type State uint8

const (
	StateRendering State = iota
	StateSelected
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateRendering:
		return "rendering"
	case StateSelected:
		return "selected"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends the menu loop.
func (s State) Terminal() bool { return s == StateSelected || s == StateCancelled }

// Result is the outcome of a menu session.
type Result struct {
	Choice Option
	State  State
}
