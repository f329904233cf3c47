package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/forestcarbon/biomassters/common"
)

// Metadata files published on the competition data-download page
const (
	FeaturesMetadataFile = "features_metadata.csv"
	AGBMMetadataFile     = "train_agbm_metadata.csv"
)

// Record is a downloadable object described by a metadata row
type Record interface {
	// FileName of the object
	FileName() string
	// StoragePath is the region-specific URI of the object
	StoragePath(region common.Region) string
	// Checksum is the cksum(1) CRC and the size in bytes of the object
	Checksum() (uint32, int64)
}

// FeatureRecord is a row of features_metadata.csv: one satellite image of a chip
type FeatureRecord struct {
	ChipID            string
	Filename          string
	Satellite         common.Platform
	Split             string
	Month             string
	Size              int64
	Cksum             uint32
	S3PathUS          string
	S3PathEU          string
	S3PathAS          string
	CorrespondingAGBM string
}

// FileName implements Record
func (r FeatureRecord) FileName() string { return r.Filename }

// StoragePath implements Record
func (r FeatureRecord) StoragePath(region common.Region) string {
	return s3Path(region, r.S3PathUS, r.S3PathEU, r.S3PathAS)
}

// Checksum implements Record
func (r FeatureRecord) Checksum() (uint32, int64) { return r.Cksum, r.Size }

// AGBMRecord is a row of train_agbm_metadata.csv: the ground truth of a chip
type AGBMRecord struct {
	ChipID   string
	Filename string
	Size     int64
	Cksum    uint32
	S3PathUS string
	S3PathEU string
	S3PathAS string
}

// FileName implements Record
func (r AGBMRecord) FileName() string { return r.Filename }

// StoragePath implements Record
func (r AGBMRecord) StoragePath(region common.Region) string {
	return s3Path(region, r.S3PathUS, r.S3PathEU, r.S3PathAS)
}

// Checksum implements Record
func (r AGBMRecord) Checksum() (uint32, int64) { return r.Cksum, r.Size }

func s3Path(region common.Region, us, eu, as string) string {
	switch region {
	case common.RegionUS:
		return us
	case common.RegionEU:
		return eu
	case common.RegionAS:
		return as
	}
	return ""
}

// Features is the table of available satellite images
type Features struct {
	Records []FeatureRecord
}

// AGBM is the table of available ground-truth images
type AGBM struct {
	Records []AGBMRecord
}

// LoadFeatures loads the satellite metadata table from the given directory
func LoadFeatures(dir string) (*Features, error) {
	rows, cols, err := readTable(filepath.Join(dir, FeaturesMetadataFile))
	if err != nil {
		return nil, err
	}

	features := Features{Records: make([]FeatureRecord, 0, len(rows))}
	for i, row := range rows {
		satellite, err := common.ParsePlatform(cols.field(row, "satellite"))
		if err != nil {
			return nil, fmt.Errorf("LoadFeatures[row %d]: %w", i, err)
		}
		size, cksum, err := parseSizeCksum(cols.field(row, "size"), cols.field(row, "cksum"))
		if err != nil {
			return nil, fmt.Errorf("LoadFeatures[row %d]: %w", i, err)
		}
		features.Records = append(features.Records, FeatureRecord{
			ChipID:            cols.field(row, "chip_id"),
			Filename:          cols.field(row, "filename"),
			Satellite:         satellite,
			Split:             cols.field(row, "split"),
			Month:             cols.field(row, "month"),
			Size:              size,
			Cksum:             cksum,
			S3PathUS:          cols.field(row, "s3path_us"),
			S3PathEU:          cols.field(row, "s3path_eu"),
			S3PathAS:          cols.field(row, "s3path_as"),
			CorrespondingAGBM: cols.field(row, "corresponding_agbm"),
		})
	}
	return &features, nil
}

// LoadAGBM loads the ground-truth metadata table from the given directory
func LoadAGBM(dir string) (*AGBM, error) {
	rows, cols, err := readTable(filepath.Join(dir, AGBMMetadataFile))
	if err != nil {
		return nil, err
	}

	agbm := AGBM{Records: make([]AGBMRecord, 0, len(rows))}
	for i, row := range rows {
		size, cksum, err := parseSizeCksum(cols.field(row, "size"), cols.field(row, "cksum"))
		if err != nil {
			return nil, fmt.Errorf("LoadAGBM[row %d]: %w", i, err)
		}
		agbm.Records = append(agbm.Records, AGBMRecord{
			ChipID:   cols.field(row, "chip_id"),
			Filename: cols.field(row, "filename"),
			Size:     size,
			Cksum:    cksum,
			S3PathUS: cols.field(row, "s3path_us"),
			S3PathEU: cols.field(row, "s3path_eu"),
			S3PathAS: cols.field(row, "s3path_as"),
		})
	}
	return &agbm, nil
}

// ForChip returns all satellite rows of the chip, preserving the table order
func (f *Features) ForChip(chip string) []FeatureRecord {
	var records []FeatureRecord
	for _, r := range f.Records {
		if r.ChipID == chip {
			records = append(records, r)
		}
	}
	return records
}

type columns map[string]int

func (c columns) field(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// readTable reads a headed csv file into rows and a column index
func readTable(path string) ([][]string, columns, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("readTable[%s]: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("readTable[%s]: empty file", path)
	}

	cols := columns{}
	for i, name := range rows[0] {
		cols[name] = i
	}
	return rows[1:], cols, nil
}

func parseSizeCksum(sizeStr, cksumStr string) (int64, uint32, error) {
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("size: %w", err)
	}
	cksum, err := strconv.ParseUint(cksumStr, 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("cksum: %w", err)
	}
	return size, uint32(cksum), nil
}
