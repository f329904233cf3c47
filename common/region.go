package common

import (
	"fmt"
	"strings"
)

//go:generate go run github.com/dmarkham/enumer -json -type Region -trimprefix Region -transform lower

// Region selects one of the geographic mirrors of the competition bucket.
// Each region maps to a distinct s3path column in the metadata files.
type Region int

const (
	RegionUS Region = iota
	RegionEU
	RegionAS
)

// ParseRegion returns the region matching the user input.
func ParseRegion(input string) (Region, error) {
	r, err := RegionString(input)
	if err != nil {
		return 0, fmt.Errorf("region %s not found, must be one of {%s}", input, strings.Join(RegionStrings(), ","))
	}
	return r, nil
}

// AWSRegion returns the AWS region hosting the mirror
func (r Region) AWSRegion() string {
	switch r {
	case RegionUS:
		return "us-east-1"
	case RegionEU:
		return "eu-central-1"
	case RegionAS:
		return "ap-southeast-1"
	}
	return ""
}
