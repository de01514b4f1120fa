package utils

import "time"

// EstimateCostCents computes an indicative cost for a rental window from a
// listing's optional hourly and daily rates, taking the cheaper option when
// both are set. Partial hours and days round up. A listing with no pricing
// estimates to zero; the handshake protocol does not bill, this figure is
// display only.
func EstimateCostCents(perHourCents, perDayCents *int32, from, to time.Time) int32 {
	if perHourCents == nil && perDayCents == nil {
		return 0
	}
	d := to.Sub(from)
	if d <= 0 {
		return 0
	}

	var hourly, daily int32 = -1, -1
	if perHourCents != nil {
		hours := int32((d + time.Hour - 1) / time.Hour)
		hourly = hours * (*perHourCents)
	}
	if perDayCents != nil {
		days := int32((d + 24*time.Hour - 1) / (24 * time.Hour))
		daily = days * (*perDayCents)
	}

	switch {
	case hourly < 0:
		return daily
	case daily < 0:
		return hourly
	case hourly < daily:
		return hourly
	default:
		return daily
	}
}
