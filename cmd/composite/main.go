package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/forestcarbon/biomassters/common"
	"github.com/forestcarbon/biomassters/processor"
	"github.com/forestcarbon/biomassters/resolver"
	"github.com/forestcarbon/biomassters/service/log"
)

type config struct {
	Chip        string
	AGBDir      string
	FeaturesDir string
	CloudProb   float64
	Band        int
	Mean        bool
	Out         string
}

func newAppConfig() (*config, error) {
	config := config{}
	flag.StringVar(&config.Chip, "chip", "", "chip id to composite")
	flag.StringVar(&config.AGBDir, "agb-dir", "./data/agb", "directory holding the ground-truth files")
	flag.StringVar(&config.FeaturesDir, "features-dir", "./data/train", "directory holding the satellite files")
	flag.Float64Var(&config.CloudProb, "cloud-prob", processor.DefaultCloudProb, "cloud-probability threshold above which a sample is discarded")
	flag.IntVar(&config.Band, "band", 0, "band of the composite to write as a quicklook")
	flag.BoolVar(&config.Mean, "mean", false, "reduce with the mean instead of the median")
	flag.StringVar(&config.Out, "out", "composite.tif", "output file")
	flag.Parse()

	if config.Chip == "" {
		return nil, fmt.Errorf("missing chip config flag")
	}
	if config.Band < 0 || config.Band >= processor.CloudBandIndex {
		return nil, fmt.Errorf("band must be in [0, %d)", processor.CloudBandIndex)
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
	ctx = log.With(ctx, "chip", config.Chip)

	files, err := resolver.New(config.AGBDir, config.FeaturesDir).Files(config.Chip, common.PlatformS2)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no Sentinel-2 files found for chip %s in %s", config.Chip, config.FeaturesDir)
	}
	log.Logger(ctx).Sugar().Infof("compositing %d time steps", len(files))

	images, err := processor.OpenAll(files)
	if err != nil {
		return err
	}

	var composite *processor.Image
	if config.Mean {
		composite, err = processor.CompositeMean(images, config.CloudProb)
	} else {
		composite, err = processor.Composite(images, config.CloudProb)
	}
	if err != nil {
		return err
	}

	quicklook := composite.Band(config.Band).Clip(0, 0.3).Normalize()
	if err := processor.Write(config.Out, quicklook); err != nil {
		return err
	}
	log.Logger(ctx).Sugar().Infof("wrote %s", config.Out)
	return nil
}
