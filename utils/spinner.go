package utils

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner initializes the process indicator.
type Spinner struct {
	mu       sync.Mutex
	writer   io.Writer
	message  string
	delay    time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

// NewSpinner instantiates a new Spinner writing its frames to w.
func NewSpinner(w io.Writer, msg string, d time.Duration) *Spinner {
	return &Spinner{
		writer:  w,
		message: msg,
		delay:   d,
	}
}

// Start starts the process indicator.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopChan != nil {
		return
	}
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		for {
			for _, r := range `-\|/` {
				select {
				case <-stop:
					return
				default:
					fmt.Fprintf(s.writer, "\r%s%s %c%s", s.message, SuccessColor, r, DefaultColor)
					time.Sleep(s.delay)
				}
			}
		}
	}(s.stopChan, s.done)
}

// Stop stops the process indicator and prints msg on the same line.
func (s *Spinner) Stop(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopChan == nil {
		return
	}
	close(s.stopChan)
	<-s.done
	s.stopChan = nil

	fmt.Fprintf(s.writer, "\r\033[K%s", msg)
}
