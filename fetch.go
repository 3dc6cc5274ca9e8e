package uwcolor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// FetchOptions controls FetchSample.
type FetchOptions struct {
	Client *http.Client
	// MaxBytes limits the response body, 32 MiB by default.
	MaxBytes int64
}

// FetchSampleData downloads the encoded image at url, DefaultSampleURL if empty.
func FetchSampleData(ctx context.Context, url string, opts ...func(o *FetchOptions)) ([]byte, error) {
	opt := FetchOptions{Client: http.DefaultClient, MaxBytes: defaultFetchMax}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	if url == "" {
		url = DefaultSampleURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := opt.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sample: bad status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, opt.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read sample: %w", err)
	}
	if int64(len(data)) > opt.MaxBytes {
		return nil, errors.New("fetch sample: response exceeds size limit")
	}
	return data, nil
}

// FetchSample downloads and decodes the image at url, DefaultSampleURL if empty.
func FetchSample(ctx context.Context, url string, opts ...func(o *FetchOptions)) (*RGB, error) {
	data, err := FetchSampleData(ctx, url, opts...)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(data))
}
