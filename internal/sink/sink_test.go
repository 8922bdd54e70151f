package sink_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpec/internal/providers"
	"lpec/internal/sink"
	"lpec/internal/structures"
	"lpec/internal/testutil"
)

func TestNewFromConfig(t *testing.T) {
	logger := &testutil.MockLogger{}
	client := &testutil.MockHTTPClient{}

	conf := &structures.Config{}
	conf.Sink.Type = "stdout"
	s, err := sink.NewFromConfig(conf, client, logger)
	require.NoError(t, err)
	assert.Equal(t, "stdout", s.Name())

	conf.Sink.Type = "hec"
	conf.Sink.HEC.URL = "https://splunk.example.com:8088"
	conf.Sink.HEC.Token = "token"
	s, err = sink.NewFromConfig(conf, client, logger)
	require.NoError(t, err)
	assert.Equal(t, "hec", s.Name())

	conf.Sink.Type = "kafka"
	_, err = sink.NewFromConfig(conf, client, logger)
	assert.Error(t, err)
}

func TestStdoutEmit(t *testing.T) {
	var buf bytes.Buffer
	s := sink.NewStdout(&buf)

	ts := time.Unix(1638757200, 500000000)
	meta := sink.Metadata{Source: "lastpass_event_reporting", Sourcetype: "lastpass:activity"}
	require.NoError(t, s.Emit(context.Background(), []byte(`{"event_id":"42"}`), ts, meta))

	line := buf.String()
	assert.Equal(t, "\n", line[len(line)-1:], "one JSON line per event")

	var envelope map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &envelope))
	assert.InDelta(t, 1638757200.5, envelope["time"].(float64), 1e-6)
	assert.Equal(t, "lastpass_event_reporting", envelope["source"])
	assert.Equal(t, "lastpass:activity", envelope["sourcetype"])
	assert.Equal(t, map[string]any{"event_id": "42"}, envelope["event"])
}

func TestHECEmit(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	conf := structures.HECConfig{
		URL:   "https://splunk.example.com:8088/",
		Token: "secret-token",
		Index: "security",
	}
	h := sink.NewHEC(conf, client, &testutil.MockLogger{})

	ts := time.Unix(1638757200, 0)
	meta := sink.Metadata{Source: "lastpass_event_reporting", Sourcetype: "lastpass:activity"}
	require.NoError(t, h.Emit(context.Background(), []byte(`{"event_id":"42"}`), ts, meta))

	require.Len(t, client.Requests, 1)
	req := client.Requests[0]
	assert.Equal(t, "https://splunk.example.com:8088/services/collector/event", req.URL)
	assert.Equal(t, "Splunk secret-token", req.Headers["Authorization"])

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &envelope))
	assert.Equal(t, "security", envelope["index"], "the configured index is the default")
	assert.Equal(t, map[string]any{"event_id": "42"}, envelope["event"])
}

func TestHECEmitMetadataIndexWins(t *testing.T) {
	client := &testutil.MockHTTPClient{}
	h := sink.NewHEC(structures.HECConfig{URL: "https://splunk.example.com:8088", Token: "t", Index: "security"},
		client, &testutil.MockLogger{})

	meta := sink.Metadata{Index: "override"}
	require.NoError(t, h.Emit(context.Background(), []byte(`{}`), time.Now(), meta))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(client.Requests[0].Body, &envelope))
	assert.Equal(t, "override", envelope["index"])
}

func TestHECEmitErrors(t *testing.T) {
	client := &testutil.MockHTTPClient{
		Responses: []*providers.HTTPResponse{{StatusCode: 403, Body: []byte(`{"text":"Invalid token"}`)}},
	}
	h := sink.NewHEC(structures.HECConfig{URL: "https://splunk.example.com:8088", Token: "t"},
		client, &testutil.MockLogger{})

	err := h.Emit(context.Background(), []byte(`{}`), time.Now(), sink.Metadata{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "403")

	client = &testutil.MockHTTPClient{Errs: []error{errors.New("connection refused")}}
	h = sink.NewHEC(structures.HECConfig{URL: "https://splunk.example.com:8088", Token: "t"},
		client, &testutil.MockLogger{})
	err = h.Emit(context.Background(), []byte(`{}`), time.Now(), sink.Metadata{})
	assert.Error(t, err)
}
