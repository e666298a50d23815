package telegram

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/m3rciful/ginabot/core/logger"
	"github.com/m3rciful/ginabot/core/telegram/netutil"
)

// apiTimeout bounds ordinary Bot API calls. getUpdates holds the connection open for
// the whole long-poll window, so the client timeout is raised above that window.
const (
	apiTimeout      = 30 * time.Second
	pollSlack       = 10 * time.Second
	transportRetry  = 2
	transportPause  = time.Second
	dialTimeout     = 5 * time.Second
	handshakeBudget = 5 * time.Second
)

// BuildHTTPClient returns the client telebot uses for Bot API calls. Connection-level
// failures (refused, reset, DNS, dial timeouts) are retried; Telegram error replies are not.
func BuildHTTPClient(pollTimeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: max(apiTimeout, pollTimeout+pollSlack),
		Transport: &retryTransport{
			base:     newAPITransport(),
			attempts: transportRetry + 1,
			pause:    transportPause,
		},
	}
}

func newAPITransport() *http.Transport {
	dialer := &net.Dialer{Timeout: dialTimeout, KeepAlive: apiTimeout}
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         dialer.DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     apiTimeout,
		TLSHandshakeTimeout: handshakeBudget,
	}
}

type retryTransport struct {
	base     http.RoundTripper
	attempts int
	pause    time.Duration
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	for n := 2; err != nil && n <= t.attempts && netutil.ShouldRetry(err); n++ {
		next, ok := replay(req)
		if !ok {
			break
		}
		if werr := sleepCtx(req.Context(), t.pause*time.Duration(n-1)); werr != nil {
			return nil, werr
		}
		logger.Debug(req.Context(), "tg", "http.retry",
			slog.String("endpoint", req.URL.Path),
			slog.Int("attempts", n),
			slog.String("cause", err.Error()),
		)
		resp, err = base.RoundTrip(next)
	}
	return resp, err
}

// replay clones req for another attempt. A body that cannot be rewound makes the
// request single-shot.
func replay(req *http.Request) (*http.Request, bool) {
	next := req.Clone(req.Context())
	switch {
	case req.GetBody != nil:
		body, err := req.GetBody()
		if err != nil {
			return nil, false
		}
		next.Body = body
	case req.Body != nil && req.Body != http.NoBody:
		return nil, false
	}
	return next, true
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
