package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"lpec/internal/providers"
	"lpec/internal/structures"
)

type hecEvent struct {
	Time       float64         `json:"time"`
	Source     string          `json:"source"`
	Sourcetype string          `json:"sourcetype"`
	Index      string          `json:"index,omitempty"`
	Event      json.RawMessage `json:"event"`
}

// HEC posts events to a Splunk HTTP Event Collector endpoint.
type HEC struct {
	conf   structures.HECConfig
	client providers.HTTPClientInterface
	logger providers.Logger
	url    string
}

func NewHEC(conf structures.HECConfig, client providers.HTTPClientInterface, logger providers.Logger) *HEC {
	url := strings.TrimRight(conf.URL, "/") + "/services/collector/event"
	return &HEC{conf: conf, client: client, logger: logger, url: url}
}

func (h *HEC) Name() string { return "hec" }

func (h *HEC) Emit(ctx context.Context, data []byte, ts time.Time, meta Metadata) error {
	index := meta.Index
	if index == "" {
		index = h.conf.Index
	}
	body, err := json.Marshal(hecEvent{
		Time:       epochFloat(ts),
		Source:     meta.Source,
		Sourcetype: meta.Sourcetype,
		Index:      index,
		Event:      data,
	})
	if err != nil {
		return err
	}

	headers := map[string]string{"Authorization": "Splunk " + h.conf.Token}
	resp, err := h.client.Post(ctx, h.url, headers, body)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("hec returned %d: %s", resp.StatusCode, resp.Text())
	}
	return nil
}
