// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	"github.com/zhubert/cadcopilot/internal/errors"
	"github.com/zhubert/cadcopilot/internal/logger"
)

// Writer puts text on a clipboard.
type Writer interface {
	WriteText(text string) error
}

// System is the OS clipboard. It is initialized on first use.
type System struct {
	once    sync.Once
	initErr error
}

// NewSystem returns a Writer for the OS clipboard.
func NewSystem() *System {
	return &System{}
}

// Init initializes the clipboard. It is safe to call more than once.
func (s *System) Init() error {
	s.once.Do(func() {
		if err := clipboard.Init(); err != nil {
			logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
			s.initErr = errors.ClipboardFailed(err)
		}
	})
	return s.initErr
}

func (s *System) WriteText(text string) error {
	if err := s.Init(); err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	logger.WithComponent("clipboard").Debug("wrote text", "bytes", len(text))
	return nil
}

// Memory is an in-process clipboard.
type Memory struct {
	mu   sync.Mutex
	text string

	// Err, when set, is returned by WriteText.
	Err error
}

func (m *Memory) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.text = text
	return nil
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}
