package common

import (
	"fmt"
	"strings"
)

//go:generate go run github.com/dmarkham/enumer -json -type Platform -trimprefix Platform

// Platform is the source of a chip file: the LiDAR-derived ground truth or one
// of the two Sentinel constellations.
type Platform int

const (
	PlatformAGB Platform = iota // {chip_id}_agbm.tif ground truth
	PlatformS1                  // Sentinel-1 radar, {chip_id}_S1_{month}.tif
	PlatformS2                  // Sentinel-2 optical, {chip_id}_S2_{month}.tif
)

// ParsePlatform returns the platform matching the user input.
// The error of an unknown input names the valid set.
func ParsePlatform(input string) (Platform, error) {
	p, err := PlatformString(input)
	if err != nil {
		return 0, fmt.Errorf("platform %s not found, must be one of {%s}", input, strings.Join(PlatformStrings(), ","))
	}
	return p, nil
}

// Matches returns whether filename is a file of the chip on this platform.
// A file belongs to a chip when its name starts with the chip id, and to a
// satellite platform when the platform tag additionally appears in the name.
// Chip ids are fixed-width in the competition dataset, which keeps the prefix
// match unambiguous.
func (p Platform) Matches(chip, filename string) bool {
	if !strings.HasPrefix(filename, chip) {
		return false
	}
	switch p {
	case PlatformS1, PlatformS2:
		return strings.Contains(filename, p.String())
	}
	return true
}
