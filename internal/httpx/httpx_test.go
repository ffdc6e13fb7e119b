package httpx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRoundTripper struct {
	mu        sync.Mutex
	responses []*http.Response
	errs      []error
	calls     int
}

func (s *scriptedRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.calls >= len(s.responses) {
		return nil, errors.New("no more responses")
	}
	resp, err := s.responses[s.calls], s.errs[s.calls]
	s.calls++
	if resp != nil {
		resp.Request = req
	}
	return resp, err
}

func newScriptedClient(responses []*http.Response, errs []error) (*http.Client, *scriptedRoundTripper) {
	for len(errs) < len(responses) {
		errs = append(errs, nil)
	}
	rt := &scriptedRoundTripper{responses: responses, errs: errs}
	return &http.Client{Transport: rt}, rt
}

func response(status int, body string, headers map[string]string) *http.Response {
	h := http.Header{}
	for k, v := range headers {
		h.Set(k, v)
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewBufferString(body)), Header: h}
}

func getReq(url string) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func fastRetry(attempts int) RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.MaxAttempts = attempts
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func TestDoWithRetry(t *testing.T) {
	tests := []struct {
		name          string
		responses     []*http.Response
		errs          []error
		cfg           RetryConfig
		expectErr     string
		expectStatus  int
		expectBody    string
		expectedCalls int
	}{
		{
			name:          "success first try",
			responses:     []*http.Response{response(200, `{"ok":true}`, nil)},
			cfg:           fastRetry(3),
			expectStatus:  200,
			expectBody:    `{"ok":true}`,
			expectedCalls: 1,
		},
		{
			name: "retries 429 then succeeds",
			responses: []*http.Response{
				response(429, `{"error":"slow down"}`, map[string]string{"Retry-After": "0"}),
				response(200, `{"ok":true}`, nil),
			},
			cfg:           fastRetry(3),
			expectStatus:  200,
			expectBody:    `{"ok":true}`,
			expectedCalls: 2,
		},
		{
			name: "gives up after max attempts on 5xx",
			responses: []*http.Response{
				response(500, `oops`, nil),
				response(502, `oops`, nil),
			},
			cfg:           fastRetry(2),
			expectErr:     "status=502",
			expectedCalls: 2,
		},
		{
			name:          "does not retry 400",
			responses:     []*http.Response{response(400, `bad`, nil), response(200, `{}`, nil)},
			cfg:           fastRetry(3),
			expectErr:     "status=400",
			expectedCalls: 1,
		},
		{
			name:          "retries connection reset",
			responses:     []*http.Response{nil, response(200, `{}`, nil)},
			errs:          []error{errors.New("read: connection reset by peer"), nil},
			cfg:           fastRetry(3),
			expectStatus:  200,
			expectBody:    `{}`,
			expectedCalls: 2,
		},
		{
			name:          "does not retry unknown transport error",
			responses:     []*http.Response{nil, response(200, `{}`, nil)},
			errs:          []error{errors.New("tls: bad certificate"), nil},
			cfg:           fastRetry(3),
			expectErr:     "bad certificate",
			expectedCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rt := newScriptedClient(tt.responses, tt.errs)

			resp, body, err := DoWithRetry(context.Background(), client, getReq("https://example.com/x"), tt.cfg)

			if tt.expectErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectStatus, resp.StatusCode)
				assert.Equal(t, tt.expectBody, string(body))
			}
			assert.Equal(t, tt.expectedCalls, rt.calls)
		})
	}
}

func TestDoWithRetry_HTTPErrorRedactsKey(t *testing.T) {
	client, _ := newScriptedClient([]*http.Response{response(403, `denied`, nil)}, nil)

	_, _, err := DoWithRetry(context.Background(), client, getReq("https://maps.example.com/json?locations=1,2&key=secret123"), NoRetry())

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 403, herr.StatusCode)
	assert.NotContains(t, herr.Error(), "secret123")
	assert.Contains(t, herr.URL, "key=REDACTED")
}

func TestDoJSON(t *testing.T) {
	client, _ := newScriptedClient([]*http.Response{response(200, `{"name":"test","value":123}`, nil)}, nil)

	var out struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}
	require.NoError(t, DoJSON(context.Background(), client, getReq("https://example.com"), &out, NoRetry()))
	assert.Equal(t, "test", out.Name)
	assert.Equal(t, 123, out.Value)
}

func TestDoJSON_InvalidJSON(t *testing.T) {
	client, _ := newScriptedClient([]*http.Response{response(200, `{"name": invalid}`, nil)}, nil)

	var out map[string]any
	err := DoJSON(context.Background(), client, getReq("https://example.com"), &out, NoRetry())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "json parse error"))
}

func TestSleepBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sleepBackoff(ctx, 1, time.Second, 2*time.Second, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, ParseRetryAfter(response(429, "", map[string]string{"Retry-After": "3"})))
	assert.Zero(t, ParseRetryAfter(response(429, "", nil)))
	assert.Zero(t, ParseRetryAfter(response(429, "", map[string]string{"Retry-After": "soon"})))
}
