package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/forestcarbon/biomassters/common"
)

const featuresCSV = `chip_id,filename,satellite,split,month,size,cksum,s3path_us,s3path_eu,s3path_as,corresponding_agbm
001b0634,001b0634_S1_00.tif,S1,train,September,1049524,3250666344,s3://us-bucket/train_features/001b0634_S1_00.tif,s3://bucket/train_features/001b0634_S1_00.tif,s3://as-bucket/train_features/001b0634_S1_00.tif,001b0634_agbm.tif
001b0634,001b0634_S2_00.tif,S2,train,September,12838231,2234561019,s3://us-bucket/train_features/001b0634_S2_00.tif,s3://bucket/train_features/001b0634_S2_00.tif,s3://as-bucket/train_features/001b0634_S2_00.tif,001b0634_agbm.tif
00ee6674,00ee6674_S1_00.tif,S1,train,September,1049524,1353241914,s3://us-bucket/train_features/00ee6674_S1_00.tif,s3://bucket/train_features/00ee6674_S1_00.tif,s3://as-bucket/train_features/00ee6674_S1_00.tif,00ee6674_agbm.tif
`

const agbmCSV = `chip_id,filename,size,cksum,s3path_us,s3path_eu,s3path_as
001b0634,001b0634_agbm.tif,262274,2110263831,s3://us-bucket/train_agbm/001b0634_agbm.tif,s3://bucket/train_agbm/001b0634_agbm.tif,s3://as-bucket/train_agbm/001b0634_agbm.tif
00ee6674,00ee6674_agbm.tif,262274,1268124477,s3://us-bucket/train_agbm/00ee6674_agbm.tif,s3://bucket/train_agbm/00ee6674_agbm.tif,s3://as-bucket/train_agbm/00ee6674_agbm.tif
0a1b2c3d,0a1b2c3d_agbm.tif,262274,99462733,s3://us-bucket/train_agbm/0a1b2c3d_agbm.tif,s3://bucket/train_agbm/0a1b2c3d_agbm.tif,s3://as-bucket/train_agbm/0a1b2c3d_agbm.tif
`

func writeMetadataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FeaturesMetadataFile), []byte(featuresCSV), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, AGBMMetadataFile), []byte(agbmCSV), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadFeatures(t *testing.T) {
	dir := writeMetadataDir(t)
	features, err := LoadFeatures(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(features.Records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(features.Records))
	}
	r := features.Records[0]
	if r.ChipID != "001b0634" || r.Filename != "001b0634_S1_00.tif" {
		t.Errorf("unexpected first record: %+v", r)
	}
	if r.Satellite != common.PlatformS1 {
		t.Errorf("expected S1, got %s", r.Satellite)
	}
	if r.Size != 1049524 || r.Cksum != 3250666344 {
		t.Errorf("unexpected size/cksum: %d/%d", r.Size, r.Cksum)
	}
	if r.StoragePath(common.RegionEU) != "s3://bucket/train_features/001b0634_S1_00.tif" {
		t.Errorf("unexpected eu path: %s", r.StoragePath(common.RegionEU))
	}
	if r.StoragePath(common.RegionUS) != "s3://us-bucket/train_features/001b0634_S1_00.tif" {
		t.Errorf("unexpected us path: %s", r.StoragePath(common.RegionUS))
	}
	if r.CorrespondingAGBM != "001b0634_agbm.tif" {
		t.Errorf("unexpected corresponding_agbm: %s", r.CorrespondingAGBM)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := LoadFeatures(t.TempDir()); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestForChip(t *testing.T) {
	dir := writeMetadataDir(t)
	features, err := LoadFeatures(dir)
	if err != nil {
		t.Fatal(err)
	}
	records := features.ForChip("001b0634")
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// table order is preserved
	if records[0].Satellite != common.PlatformS1 || records[1].Satellite != common.PlatformS2 {
		t.Errorf("records out of order: %+v", records)
	}
	if records := features.ForChip("deadbeef"); len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestSample(t *testing.T) {
	dir := writeMetadataDir(t)
	agbm, err := LoadAGBM(dir)
	if err != nil {
		t.Fatal(err)
	}
	sample, err := agbm.Sample(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(sample) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(sample))
	}
	if sample[0].ChipID == sample[1].ChipID {
		t.Error("sampled rows are not distinct")
	}
	if _, err := agbm.Sample(4); err == nil {
		t.Error("expected error sampling more rows than available")
	}
	if sample, err := agbm.Sample(0); err != nil || len(sample) != 0 {
		t.Errorf("expected empty sample, got %v, %v", sample, err)
	}
}
