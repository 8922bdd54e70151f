package providers

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"lpec/internal/structures"
)

// HTTPResponse is the decoded-enough view of a vendor response: the status
// code and the raw body. JSON decoding happens in the collector, which needs
// to preserve response order.
type HTTPResponse struct {
	StatusCode int
	Body       []byte
}

func (r *HTTPResponse) Text() string {
	return string(r.Body)
}

type HTTPClientInterface interface {
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPResponse, error)
}

type HTTPClientProvider struct {
	client *http.Client
}

// NewHTTPClientProvider builds the transport collaborator. TLS and proxy
// settings are delegated to the standard transport; the collector itself
// never configures them.
func NewHTTPClientProvider(conf *structures.Config) HTTPClientInterface {
	timeout := conf.Collector.HTTPTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &HTTPClientProvider{client: &http.Client{Timeout: timeout, Transport: tr}}
}

func (p *HTTPClientProvider) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &HTTPResponse{StatusCode: resp.StatusCode, Body: raw}, nil
}
