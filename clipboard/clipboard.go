// Package clipboard delivers generated statements to the user's clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// Writer places text where the user can paste it
type Writer interface {
	WriteAll(text string) error
}

// System writes to the desktop clipboard
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("no clipboard utility available on this system")
	}

	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

// Discard drops everything, for headless runs
type Discard struct{}

func (Discard) WriteAll(string) error {
	return nil
}

// Memory keeps the last written text
type Memory struct {
	mu   sync.Mutex
	last string
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.last = text
	return nil
}

func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.last
}

// Default returns System when a clipboard utility is present and Discard otherwise
func Default() Writer {
	if clipboard.Unsupported {
		return Discard{}
	}
	return System{}
}
