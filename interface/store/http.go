package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cavaliercoder/grab"

	"github.com/forestcarbon/biomassters/service"
	"github.com/forestcarbon/biomassters/service/log"
)

// HTTPStore implements ObjectStore for http(s) mirrors of the buckets
type HTTPStore struct {
}

// NewHTTPStore creates a new ObjectStore over plain http(s)
func NewHTTPStore() *HTTPStore {
	return &HTTPStore{}
}

// Name implements ObjectStore
func (s *HTTPStore) Name() string {
	return "HTTP"
}

// Download implements ObjectStore
func (s *HTTPStore) Download(ctx context.Context, uri, localPath string) error {
	return atomicWrite(localPath, func(tmpPath string) error {
		req, err := grab.NewRequest(tmpPath, uri)
		if err != nil {
			return fmt.Errorf("HTTPStore.NewRequest: %w", err)
		}
		req = req.WithContext(ctx)

		client := grab.NewClient()
		resp := client.Do(req)

		displayProgress(ctx, "HTTPStore:"+uri, resp, 0.05)

		if err := resp.Err(); err != nil {
			err = fmt.Errorf("HTTPStore.Download[%s]: %w", uri, err)
			if resp.HTTPResponse == nil {
				return service.MakeTemporary(err)
			}
			switch resp.HTTPResponse.StatusCode {
			case 403, 404:
				return ErrObjectNotFound{uri}
			case 408, 429, 500, 501, 502, 503, 504:
				return service.MakeTemporary(err)
			default:
				return err
			}
		}
		return nil
	})
}

func fmtBytes(bytes int64) string {
	v := float64(bytes)
	switch {
	case v > 1<<30:
		return fmt.Sprintf("%.2fGo", v/(1<<30))
	case v > 1<<20:
		return fmt.Sprintf("%.2fMo", v/(1<<20))
	case v > 1<<10:
		return fmt.Sprintf("%.2fko", v/(1<<10))
	default:
		return fmt.Sprintf("%.2fo", v)
	}
}

// displayProgress logs the progress of the transfer every progressPeriod
func displayProgress(ctx context.Context, prefix string, resp *grab.Response, progressPeriod float64) {
	t := time.NewTicker(time.Second)
	defer t.Stop()

	progress, lastBytes, seconds := 0.0, int64(0), int64(0)
	for {
		select {
		case <-t.C:
			seconds++
			if resp.Progress() > progress {
				log.Logger(ctx).Sugar().Debugf("%s: %.2f%% %s/%s (%s/s)", prefix, 100*resp.Progress(), fmtBytes(resp.BytesComplete()), fmtBytes(resp.Size), fmtBytes((resp.BytesComplete()-lastBytes)/seconds))
				seconds = 0
				progress += progressPeriod
				lastBytes = resp.BytesComplete()
			}

		case <-resp.Done:
			return
		}
	}
}
