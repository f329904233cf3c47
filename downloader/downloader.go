// Package downloader fetches the files of sampled chips from a bucket mirror.
package downloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/forestcarbon/biomassters/catalog"
	"github.com/forestcarbon/biomassters/common"
	"github.com/forestcarbon/biomassters/interface/store"
	"github.com/forestcarbon/biomassters/service"
	"github.com/forestcarbon/biomassters/service/log"
)

// Downloader downloads chip files described by the metadata tables.
// A file already present at its target path is never fetched again and never
// overwritten.
type Downloader struct {
	Store       store.ObjectStore
	Region      common.Region
	DownloadDir string
	Concurrency int           // number of parallel downloads, 1 for sequential
	Timeout     time.Duration // per-file deadline, 0 for none
	Verify      bool          // check cksum and size against the metadata after each fetch

	mu       sync.Mutex
	inflight service.StringSet
}

// EnsureDownloadDir creates the download directory and its two subdirectories
// if they don't exist
func EnsureDownloadDir(dir string) error {
	for _, d := range []string{dir, filepath.Join(dir, common.FeaturesFolder), filepath.Join(dir, common.AGBMFolder)} {
		if _, err := os.Stat(d); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("EnsureDownloadDir.Stat: %w", err)
		}
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("EnsureDownloadDir.MkdirAll: %w", err)
		}
	}
	return nil
}

// DownloadChips samples n chips from the ground-truth metadata in metadataDir
// and downloads their satellite files and their ground-truth file
func (d *Downloader) DownloadChips(ctx context.Context, metadataDir string, n int) error {
	if err := EnsureDownloadDir(d.DownloadDir); err != nil {
		return err
	}

	agbm, err := catalog.LoadAGBM(metadataDir)
	if err != nil {
		return fmt.Errorf("DownloadChips: %w", err)
	}
	features, err := catalog.LoadFeatures(metadataDir)
	if err != nil {
		return fmt.Errorf("DownloadChips: %w", err)
	}

	sample, err := agbm.Sample(n)
	if err != nil {
		return fmt.Errorf("DownloadChips: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.Concurrency, 1))
	for _, row := range sample {
		ctx := log.With(gctx, "chip", row.ChipID)
		for _, record := range features.ForChip(row.ChipID) {
			g.Go(func() error {
				return d.DownloadFile(ctx, record, common.FeaturesFolder)
			})
		}
		g.Go(func() error {
			return d.DownloadFile(ctx, row, common.AGBMFolder)
		})
	}
	return g.Wait()
}

// DownloadFile fetches the object of a metadata record into
// DownloadDir/subfolder/filename. If the target path already exists the fetch
// is skipped and the call succeeds.
func (d *Downloader) DownloadFile(ctx context.Context, record catalog.Record, subfolder string) error {
	target := filepath.Join(d.DownloadDir, subfolder, record.FileName())

	if !d.claim(target) {
		// another worker is already fetching this target
		return nil
	}
	defer d.release(target)

	if _, err := os.Stat(target); err == nil {
		log.Logger(ctx).Sugar().Infof("file %s already exists in %s", record.FileName(), d.DownloadDir)
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("DownloadFile.Stat: %w", err)
	}

	uri := record.StoragePath(d.Region)
	if uri == "" {
		return fmt.Errorf("DownloadFile[%s]: no storage path for region %s", record.FileName(), d.Region)
	}

	dctx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	log.Logger(ctx).Sugar().Infof("downloading %s to %s", record.FileName(), d.DownloadDir)
	if err := d.Store.Download(dctx, uri, target); err != nil {
		return fmt.Errorf("DownloadFile[%s]: %w", record.FileName(), err)
	}

	if d.Verify {
		if err := verify(target, record); err != nil {
			os.Remove(target)
			return fmt.Errorf("DownloadFile[%s]: %w", record.FileName(), err)
		}
	}
	return nil
}

func (d *Downloader) claim(target string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inflight == nil {
		d.inflight = service.StringSet{}
	}
	if d.inflight.Exists(target) {
		return false
	}
	d.inflight.Push(target)
	return true
}

func (d *Downloader) release(target string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inflight.Pop(target)
}

// verify compares the file against the cksum and size of its metadata record
func verify(path string, record catalog.Record) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("verify.Open: %w", err)
	}
	defer f.Close()

	crc, size, err := service.Cksum(f)
	if err != nil {
		return fmt.Errorf("verify.Cksum: %w", err)
	}
	wantCrc, wantSize := record.Checksum()
	if crc != wantCrc || size != wantSize {
		return fmt.Errorf("verify: cksum %d (%do) does not match metadata %d (%do)", crc, size, wantCrc, wantSize)
	}
	return nil
}
