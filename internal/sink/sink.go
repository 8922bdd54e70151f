package sink

import (
	"context"
	"fmt"
	"os"
	"time"

	"lpec/internal/providers"
	"lpec/internal/structures"
)

// Metadata identifies where an emitted event came from.
type Metadata struct {
	Source     string
	Sourcetype string
	Index      string
}

// Sink receives one enriched record per decoded vendor event, in response
// order.
type Sink interface {
	Name() string
	Emit(ctx context.Context, data []byte, ts time.Time, meta Metadata) error
}

func NewFromConfig(conf *structures.Config, client providers.HTTPClientInterface, logger providers.Logger) (Sink, error) {
	switch conf.Sink.Type {
	case "stdout":
		return NewStdout(os.Stdout), nil
	case "hec":
		return NewHEC(conf.Sink.HEC, client, logger), nil
	default:
		return nil, fmt.Errorf("unknown sink type: %s", conf.Sink.Type)
	}
}

func epochFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
