package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/forestcarbon/biomassters/common"
	"github.com/forestcarbon/biomassters/downloader"
	"github.com/forestcarbon/biomassters/interface/store"
	"github.com/forestcarbon/biomassters/service/log"
)

type config struct {
	N           int
	DownloadDir string
	MetadataDir string
	Region      string
	Concurrency int
	Timeout     time.Duration
	Verify      bool

	AWSAccessKeyID     string
	AWSSecretAccessKey string
	GSAuthenticated    bool
	LocalRoot          string
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.IntVar(&config.N, "n", 1, "number of chips to download")
	flag.StringVar(&config.DownloadDir, "download-dir", "", "directory to download the files to")
	flag.StringVar(&config.MetadataDir, "metadata-dir", "meta", "directory containing the metadata csv files")
	flag.StringVar(&config.Region, "region", "eu", "bucket mirror to download from (us, eu or as)")
	flag.IntVar(&config.Concurrency, "concurrency", 1, "number of parallel downloads")
	flag.DurationVar(&config.Timeout, "timeout", 0, "per-file download timeout (0 to disable)")
	flag.BoolVar(&config.Verify, "verify", false, "verify downloaded files against the metadata cksum (files are trusted as-is by default)")

	flag.StringVar(&config.AWSAccessKeyID, "aws-access-key-id", "", "AWS access key (optional, the competition buckets are read anonymously by default)")
	flag.StringVar(&config.AWSSecretAccessKey, "aws-secret-access-key", "", "AWS secret key (optional)")
	flag.BoolVar(&config.GSAuthenticated, "gs-auth", false, "authenticate to Google Storage (anonymous by default)")
	flag.StringVar(&config.LocalRoot, "local-root", "", "local directory mirroring the buckets (optional). To resolve file:// storage paths.")
	flag.Parse()

	if config.DownloadDir == "" {
		return nil, fmt.Errorf("missing download-dir config flag")
	}
	if config.N <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}
	return &config, nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx); err != nil {
		log.Fatal("error", zap.Error(err))
	}
}

func run(ctx context.Context) error {
	config, err := newAppConfig()
	if err != nil {
		return err
	}

	region, err := common.ParseRegion(config.Region)
	if err != nil {
		return err
	}

	s3Store, err := store.NewS3Store(ctx, region, config.AWSAccessKeyID, config.AWSSecretAccessKey)
	if err != nil {
		return fmt.Errorf("store s3: %w", err)
	}
	gsStore, err := store.NewGSStore(ctx, !config.GSAuthenticated)
	if err != nil {
		return fmt.Errorf("store gs: %w", err)
	}
	httpStore := store.NewHTTPStore()

	stores := store.Registry{}
	stores.Register("s3", s3Store)
	stores.Register("gs", gsStore)
	stores.Register("http", httpStore)
	stores.Register("https", httpStore)
	if config.LocalRoot != "" {
		stores.Register("file", store.NewLocalStore(config.LocalRoot))
	}

	d := &downloader.Downloader{
		Store:       stores,
		Region:      region,
		DownloadDir: config.DownloadDir,
		Concurrency: config.Concurrency,
		Timeout:     config.Timeout,
		Verify:      config.Verify,
	}

	log.Logger(ctx).Sugar().Infof("downloading %d chips from the %s mirror to %s", config.N, region, config.DownloadDir)
	if err := d.DownloadChips(ctx, config.MetadataDir, config.N); err != nil {
		return fmt.Errorf("downloader: %w", err)
	}
	log.Logger(ctx).Info("done")
	return nil
}
