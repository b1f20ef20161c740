package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/go-resty/resty/v2"

	"github.com/sanix-darker/zreview/internal/core"
)

// StdinSource is the input argument that reads the review from stdin.
const StdinSource = "-"

// InputOptions controls where ReadInput may read from.
type InputOptions struct {
	Stdin   io.Reader
	Timeout time.Duration

	// Progress, when set, receives a spinner while a URL is fetched.
	Progress io.Writer
}

// IsURL reports whether source should be fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ReadInput returns the bytes of source: "-" for stdin, an http(s) URL,
// or a file path.
func ReadInput(ctx context.Context, source string, opts InputOptions) ([]byte, error) {
	switch {
	case source == StdinSource:
		if opts.Stdin == nil {
			opts.Stdin = os.Stdin
		}
		data, err := io.ReadAll(opts.Stdin)
		if err != nil {
			return nil, core.IOError("stdin", "failed to read input", err)
		}
		return data, nil
	case IsURL(source):
		return FetchURL(ctx, source, opts.Timeout, opts.Progress)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, core.IOError(source, "input file not found", err)
			}
			return nil, core.IOError(source, "failed to read input", err)
		}
		return data, nil
	}
}

// FetchURL downloads url, typically a review.json published on a Zuul log
// server. Non-2xx answers are errors.
func FetchURL(ctx context.Context, url string, timeout time.Duration, progress io.Writer) ([]byte, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	if progress != nil {
		s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(progress))
		s.Suffix = " fetching " + url
		s.Start()
		defer s.Stop()
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json, text/plain, */*")

	resp, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, core.IOError(url, "failed to fetch input", err)
	}
	if resp.StatusCode() < http.StatusOK || resp.StatusCode() >= http.StatusMultipleChoices {
		return nil, core.IOError(url, "failed to fetch input",
			fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}
	return resp.Body(), nil
}
