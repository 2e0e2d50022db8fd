package cli

import (
	"fmt"
	"io"

	"github.com/wordnest/wordnest/internal/storage"
)

// UsageReporter is implemented by storage backends that can measure their
// own occupancy.
type UsageReporter interface {
	Usage() (storage.Usage, error)
}

// PrintStorageInfo writes the storage occupancy report: bytes used, key
// count, profile count, and percentage of the configured quota.
func PrintStorageInfo(w io.Writer, reporter UsageReporter, quotaBytes int64, profileCount int) error {
	usage, err := reporter.Usage()
	if err != nil {
		return fmt.Errorf("measure storage usage: %w", err)
	}

	fmt.Fprintf(w, "profiles: %d\n", profileCount)
	fmt.Fprintf(w, "keys:     %d\n", usage.Keys)
	fmt.Fprintf(w, "used:     %d bytes\n", usage.UsedBytes)
	if quotaBytes > 0 {
		percentage := float64(usage.UsedBytes) / float64(quotaBytes) * 100
		if percentage > 100 {
			percentage = 100
		}
		fmt.Fprintf(w, "quota:    %d bytes (%.1f%% used)\n", quotaBytes, percentage)
	}
	return nil
}
