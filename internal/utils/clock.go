package utils

import (
	"time"
	_ "time/tzdata"
)

// StorageLocation is the zone every persisted timestamp is converted to.
var StorageLocation = mustLoadLocation("Asia/Tokyo")

// Clock returns the current time. Tests replace it to freeze time.
var Clock = time.Now

// Now returns the current time taken in UTC and converted to StorageLocation,
// truncated to the microsecond precision of the database columns.
func Now() time.Time {
	return Clock().UTC().In(StorageLocation).Truncate(time.Microsecond)
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}
