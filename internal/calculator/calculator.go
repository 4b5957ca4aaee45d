// Package calculator implements the arithmetic and statistical helpers exposed by calcg.
//
// All operations are pure: they read their arguments, return a value, and never
// touch shared state. The only failure mode is ErrInvalidArgument from Mean.
package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument signals that a caller-supplied input violates an operation's precondition
var ErrInvalidArgument = errors.New("invalid argument")

// DefaultName is the display name used when no name is configured
const DefaultName = "MaSuperCalc"

// greetingTemplate is the fixed welcome message; %s is replaced by the username
const greetingTemplate = "Bonjour %s, bienvenue sur notre calculatrice !"

// Calculator exposes arithmetic operations under a display name.
// The name is a label only and has no effect on results.
type Calculator struct {
	name string
}

// New creates a Calculator with the given display name
func New(name string) *Calculator {
	return &Calculator{name: name}
}

// Name returns the display name set at construction
func (c *Calculator) Name() string {
	return c.name
}

// Add returns a + b
func (c *Calculator) Add(a, b float64) float64 {
	return a + b
}

// Subtract returns a - b
func (c *Calculator) Subtract(a, b float64) float64 {
	return a - b
}

// Mean returns the arithmetic mean of numbers, summed left to right.
// It returns an error wrapping ErrInvalidArgument when numbers is empty.
func (c *Calculator) Mean(numbers []float64) (float64, error) {
	if len(numbers) == 0 {
		return 0, fmt.Errorf("%w: cannot compute mean of empty collection", ErrInvalidArgument)
	}

	var sum float64
	for _, n := range numbers {
		sum += n
	}
	return sum / float64(len(numbers)), nil
}

// Greet returns the welcome message for username
func Greet(username string) string {
	return fmt.Sprintf(greetingTemplate, username)
}
