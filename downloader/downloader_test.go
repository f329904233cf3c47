package downloader_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/forestcarbon/biomassters/catalog"
	"github.com/forestcarbon/biomassters/common"
	"github.com/forestcarbon/biomassters/downloader"
)

const featuresCSV = `chip_id,filename,satellite,split,month,size,cksum,s3path_us,s3path_eu,s3path_as,corresponding_agbm
001b0634,001b0634_S1_00.tif,S1,train,September,7,1671798812,s3://us-bucket/train_features/001b0634_S1_00.tif,s3://bucket/train_features/001b0634_S1_00.tif,s3://as-bucket/train_features/001b0634_S1_00.tif,001b0634_agbm.tif
001b0634,001b0634_S2_00.tif,S2,train,September,7,1671798812,s3://us-bucket/train_features/001b0634_S2_00.tif,s3://bucket/train_features/001b0634_S2_00.tif,s3://as-bucket/train_features/001b0634_S2_00.tif,001b0634_agbm.tif
00ee6674,00ee6674_S1_00.tif,S1,train,September,7,1671798812,s3://us-bucket/train_features/00ee6674_S1_00.tif,s3://bucket/train_features/00ee6674_S1_00.tif,s3://as-bucket/train_features/00ee6674_S1_00.tif,00ee6674_agbm.tif
`

const agbmCSV = `chip_id,filename,size,cksum,s3path_us,s3path_eu,s3path_as
001b0634,001b0634_agbm.tif,7,1671798812,s3://us-bucket/train_agbm/001b0634_agbm.tif,s3://bucket/train_agbm/001b0634_agbm.tif,s3://as-bucket/train_agbm/001b0634_agbm.tif
00ee6674,00ee6674_agbm.tif,7,1671798812,s3://us-bucket/train_agbm/00ee6674_agbm.tif,s3://bucket/train_agbm/00ee6674_agbm.tif,s3://as-bucket/train_agbm/00ee6674_agbm.tif
`

// content of every fake object, cksum 1671798812, 7 bytes
const objectContent = "tifdata"

var _ = Describe("Downloader", func() {
	var ctx context.Context
	var metadataDir, downloadDir string
	var fake *FakeStore
	var dl *downloader.Downloader

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		metadataDir, err = os.MkdirTemp("", "meta")
		Expect(err).NotTo(HaveOccurred())
		downloadDir, err = os.MkdirTemp("", "download")
		Expect(err).NotTo(HaveOccurred())

		Expect(os.WriteFile(filepath.Join(metadataDir, catalog.FeaturesMetadataFile), []byte(featuresCSV), 0644)).To(Succeed())
		Expect(os.WriteFile(filepath.Join(metadataDir, catalog.AGBMMetadataFile), []byte(agbmCSV), 0644)).To(Succeed())

		fake = &FakeStore{objects: map[string][]byte{}}
		for _, uri := range []string{
			"s3://bucket/train_features/001b0634_S1_00.tif",
			"s3://bucket/train_features/001b0634_S2_00.tif",
			"s3://bucket/train_features/00ee6674_S1_00.tif",
			"s3://bucket/train_agbm/001b0634_agbm.tif",
			"s3://bucket/train_agbm/00ee6674_agbm.tif",
		} {
			fake.objects[uri] = []byte(objectContent)
		}

		dl = &downloader.Downloader{
			Store:       fake,
			Region:      common.RegionEU,
			DownloadDir: downloadDir,
			Concurrency: 1,
		}
	})

	AfterEach(func() {
		os.RemoveAll(metadataDir)
		os.RemoveAll(downloadDir)
	})

	record := func() catalog.FeatureRecord {
		return catalog.FeatureRecord{
			ChipID:    "001b0634",
			Filename:  "001b0634_S1_00.tif",
			Satellite: common.PlatformS1,
			Size:      7,
			Cksum:     1671798812,
			S3PathEU:  "s3://bucket/train_features/001b0634_S1_00.tif",
		}
	}

	Describe("EnsureDownloadDir", func() {
		It("creates the directory layout", func() {
			Expect(downloader.EnsureDownloadDir(downloadDir)).To(Succeed())
			Expect(filepath.Join(downloadDir, common.FeaturesFolder)).To(BeADirectory())
			Expect(filepath.Join(downloadDir, common.AGBMFolder)).To(BeADirectory())
		})

		It("is idempotent", func() {
			Expect(downloader.EnsureDownloadDir(downloadDir)).To(Succeed())
			Expect(downloader.EnsureDownloadDir(downloadDir)).To(Succeed())
		})
	})

	Describe("DownloadFile", func() {
		BeforeEach(func() {
			Expect(downloader.EnsureDownloadDir(downloadDir)).To(Succeed())
		})

		It("fetches a missing file", func() {
			Expect(dl.DownloadFile(ctx, record(), common.FeaturesFolder)).To(Succeed())
			content, err := os.ReadFile(filepath.Join(downloadDir, common.FeaturesFolder, "001b0634_S1_00.tif"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal(objectContent))
			Expect(fake.Calls()).To(HaveLen(1))
		})

		It("does not fetch an existing file", func() {
			Expect(dl.DownloadFile(ctx, record(), common.FeaturesFolder)).To(Succeed())
			Expect(dl.DownloadFile(ctx, record(), common.FeaturesFolder)).To(Succeed())
			Expect(fake.Calls()).To(HaveLen(1))
		})

		It("resolves the uri of the configured region", func() {
			Expect(dl.DownloadFile(ctx, record(), common.FeaturesFolder)).To(Succeed())
			Expect(fake.Calls()).To(ConsistOf("s3://bucket/train_features/001b0634_S1_00.tif"))
		})

		It("propagates store failures", func() {
			rec := record()
			rec.Filename = "001b0634_S1_01.tif"
			rec.S3PathEU = "s3://bucket/train_features/001b0634_S1_01.tif"
			Expect(dl.DownloadFile(ctx, rec, common.FeaturesFolder)).NotTo(Succeed())
			Expect(filepath.Join(downloadDir, common.FeaturesFolder, "001b0634_S1_01.tif")).NotTo(BeAnExistingFile())
		})

		It("accepts a file matching its metadata cksum", func() {
			dl.Verify = true
			Expect(dl.DownloadFile(ctx, record(), common.FeaturesFolder)).To(Succeed())
			Expect(filepath.Join(downloadDir, common.FeaturesFolder, "001b0634_S1_00.tif")).To(BeAnExistingFile())
		})

		It("removes a file failing cksum verification", func() {
			dl.Verify = true
			rec := record()
			rec.Cksum = 12345
			Expect(dl.DownloadFile(ctx, rec, common.FeaturesFolder)).NotTo(Succeed())
			Expect(filepath.Join(downloadDir, common.FeaturesFolder, "001b0634_S1_00.tif")).NotTo(BeAnExistingFile())
		})
	})

	Describe("DownloadChips", func() {
		It("downloads the satellite and ground-truth files of every sampled chip", func() {
			Expect(dl.DownloadChips(ctx, metadataDir, 2)).To(Succeed())
			for _, f := range []string{
				filepath.Join(common.FeaturesFolder, "001b0634_S1_00.tif"),
				filepath.Join(common.FeaturesFolder, "001b0634_S2_00.tif"),
				filepath.Join(common.FeaturesFolder, "00ee6674_S1_00.tif"),
				filepath.Join(common.AGBMFolder, "001b0634_agbm.tif"),
				filepath.Join(common.AGBMFolder, "00ee6674_agbm.tif"),
			} {
				Expect(filepath.Join(downloadDir, f)).To(BeAnExistingFile())
			}
			Expect(fake.Calls()).To(HaveLen(5))
		})

		It("skips files already downloaded", func() {
			Expect(downloader.EnsureDownloadDir(downloadDir)).To(Succeed())
			existing := filepath.Join(downloadDir, common.AGBMFolder, "001b0634_agbm.tif")
			Expect(os.WriteFile(existing, []byte(objectContent), 0644)).To(Succeed())

			Expect(dl.DownloadChips(ctx, metadataDir, 2)).To(Succeed())
			Expect(fake.Calls()).To(HaveLen(4))
			Expect(fake.Calls()).NotTo(ContainElement("s3://bucket/train_agbm/001b0634_agbm.tif"))
		})

		It("never fetches the same object twice with parallel workers", func() {
			dl.Concurrency = 4
			Expect(dl.DownloadChips(ctx, metadataDir, 2)).To(Succeed())
			calls := fake.Calls()
			seen := map[string]int{}
			for _, c := range calls {
				seen[c]++
			}
			for uri, n := range seen {
				Expect(n).To(Equal(1), "uri %s fetched %d times", uri, n)
			}
		})

		It("fails when sampling more chips than available", func() {
			Expect(dl.DownloadChips(ctx, metadataDir, 3)).NotTo(Succeed())
		})

		It("fails fast on a missing metadata file", func() {
			empty, err := os.MkdirTemp("", "empty")
			Expect(err).NotTo(HaveOccurred())
			defer os.RemoveAll(empty)
			Expect(dl.DownloadChips(ctx, empty, 1)).NotTo(Succeed())
			Expect(fake.Calls()).To(BeEmpty())
		})
	})
})
