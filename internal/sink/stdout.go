package sink

import (
	"context"
	"io"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

type stdoutEvent struct {
	Time       float64         `json:"time"`
	Source     string          `json:"source"`
	Sourcetype string          `json:"sourcetype"`
	Event      json.RawMessage `json:"event"`
}

// Stdout writes one JSON line per event, for piping into a forwarder.
type Stdout struct {
	mu  sync.Mutex
	out io.Writer
}

func NewStdout(out io.Writer) *Stdout {
	return &Stdout{out: out}
}

func (s *Stdout) Name() string { return "stdout" }

func (s *Stdout) Emit(_ context.Context, data []byte, ts time.Time, meta Metadata) error {
	line, err := json.Marshal(stdoutEvent{
		Time:       epochFloat(ts),
		Source:     meta.Source,
		Sourcetype: meta.Sourcetype,
		Event:      data,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.out.Write(line); err != nil {
		return err
	}
	_, err = s.out.Write([]byte("\n"))
	return err
}
