package config

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout    = 15 * time.Second
	defaultRetryInterval   = 500 * time.Millisecond
	maxSheetBytes          = 1 << 20
	defaultRemoteUserAgent = "gls-tokenomics/1.0"
)

// RemoteSheetSource downloads a two-column parameter sheet, typically the
// CSV export URL of a published spreadsheet, retrying transient failures.
// Blank cells fall back to Base as for SheetSource.
type RemoteSheetSource struct {
	URL             string
	Base            Config
	Client          *http.Client
	Retries         int
	InitialInterval time.Duration
	Logger          *zap.Logger
}

func (s *RemoteSheetSource) Load(ctx context.Context) (Config, error) {
	body, err := s.fetchWithRetry(ctx)
	if err != nil {
		return Config{}, err
	}
	return ParseSheet(bytes.NewReader(body), sheetBase(s.Base))
}

func (s *RemoteSheetSource) fetchWithRetry(ctx context.Context) ([]byte, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	retries := s.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	interval := s.InitialInterval
	if interval <= 0 {
		interval = defaultRetryInterval
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = interval
	policy.MaxInterval = interval * 10

	notify := func(err error, d time.Duration) {
		logger.Warn("Sheet fetch failed, retrying",
			zap.String("url", s.URL),
			zap.Duration("backoff", d),
			zap.Error(err))
	}

	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		return s.fetch(ctx)
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(retries)),
		backoff.WithNotify(notify))
	if err != nil {
		logger.Error("Failed to fetch sheet", zap.String("url", s.URL), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}

	logger.Debug("Sheet fetched", zap.String("url", s.URL), zap.Int("bytes", len(body)))
	return body, nil
}

func (s *RemoteSheetSource) fetch(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("invalid sheet URL: %w", err))
	}
	req.Header.Set("User-Agent", defaultRemoteUserAgent)
	req.Header.Set("Accept", "text/csv, text/tab-separated-values, text/plain")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("sheet server returned %s", resp.Status)
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("sheet server returned %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet body: %w", err)
	}
	return body, nil
}
