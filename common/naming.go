package common

import (
	"fmt"
	"time"
)

// Layout of a download directory
const (
	FeaturesFolder = "train_features"
	AGBMFolder     = "train_agbm"
)

// FeatureFileName returns the name of a satellite file for the chip.
// month is the number of months since September of the year preceding the
// ground-truth acquisition (00 is September, 01 is October, ...).
func FeatureFileName(chip string, platform Platform, month int) string {
	return fmt.Sprintf("%s_%s_%02d.tif", chip, platform, month)
}

// AGBMFileName returns the name of the ground-truth file for the chip
func AGBMFileName(chip string) string {
	return chip + "_agbm.tif"
}

// MonthName returns the calendar month of a feature month number (00 is September)
func MonthName(month int) string {
	return time.Month((8+month)%12 + 1).String()
}

// MonthNumber returns the feature month number of a calendar month name
func MonthNumber(name string) (int, error) {
	for i := 0; i < 12; i++ {
		if MonthName(i) == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown month: %s", name)
}
