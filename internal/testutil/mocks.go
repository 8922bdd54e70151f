package testutil

import (
	"context"
	"sync"
	"time"

	"lpec/internal/providers"
	"lpec/internal/sink"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// CountLevel returns how many entries were recorded at the given level.
func (m *MockLogger) CountLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockStore implements checkpoint.Store in memory with injectable failures.
type MockStore struct {
	mu       sync.Mutex
	Data     map[string][]byte
	GetErr   error
	PutErr   error
	PutCalls int
}

func NewMockStore() *MockStore {
	return &MockStore{Data: make(map[string][]byte)}
}

func (m *MockStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	raw, ok := m.Data[key]
	return raw, ok, nil
}

func (m *MockStore) Put(_ context.Context, key string, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.PutCalls++
	m.Data[key] = raw
	return nil
}

// MockHTTPClient implements providers.HTTPClientInterface with scripted
// responses, returned in order of Post calls.
type MockHTTPClient struct {
	mu        sync.Mutex
	Responses []*providers.HTTPResponse
	Errs      []error
	Requests  []MockRequest
}

type MockRequest struct {
	URL     string
	Headers map[string]string
	Body    []byte
}

func (m *MockHTTPClient) Post(_ context.Context, url string, headers map[string]string, body []byte) (*providers.HTTPResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := len(m.Requests)
	m.Requests = append(m.Requests, MockRequest{URL: url, Headers: headers, Body: body})
	if i < len(m.Errs) && m.Errs[i] != nil {
		return nil, m.Errs[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return &providers.HTTPResponse{StatusCode: 200, Body: []byte(`{"status":"OK","data":{}}`)}, nil
}

// MockSink implements sink.Sink and records emitted events.
type MockSink struct {
	mu      sync.Mutex
	Emitted []EmittedEvent
	EmitErr error
}

type EmittedEvent struct {
	Data []byte
	Ts   time.Time
	Meta sink.Metadata
}

func (m *MockSink) Name() string { return "mock" }

func (m *MockSink) Emit(_ context.Context, data []byte, ts time.Time, meta sink.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.EmitErr != nil {
		return m.EmitErr
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	m.Emitted = append(m.Emitted, EmittedEvent{Data: cp, Ts: ts, Meta: meta})
	return nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu               sync.Mutex
	EventsEmitted    int
	FetchErrors      int
	QueryRejections  int
	CheckpointWrites int
	DedupSkipped     int
	FetchDurations   int
	WindowsPlanned   []int
	LastRun          time.Time
}

func (m *MockMetrics) IncEventsEmitted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsEmitted += n
}

func (m *MockMetrics) IncFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
}

func (m *MockMetrics) IncQueryRejections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryRejections++
}

func (m *MockMetrics) IncCheckpointWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckpointWrites++
}

func (m *MockMetrics) IncDedupSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DedupSkipped++
}

func (m *MockMetrics) ObserveFetchDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchDurations++
}

func (m *MockMetrics) ObserveWindowsPlanned(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WindowsPlanned = append(m.WindowsPlanned, n)
}

func (m *MockMetrics) SetLastRunTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRun = t
}

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}
