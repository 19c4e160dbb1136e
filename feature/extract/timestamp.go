package extract

import (
	"fmt"
	"strings"
	"time"
)

// offsetLayout matches "Tue Jan 22 01:43:25 GMT+03:00 2019".
const offsetLayout = "Mon Jan 02 15:04:05 GMT-07:00 2006"

// abbrevLayout matches "Wed Jan 09 09:55:25 2019" once the zone is removed.
const abbrevLayout = "Mon Jan 02 15:04:05 2006"

// zones maps the abbreviations tablets have been seen to write to their offsets.
// Go's parser gives unknown abbreviations a zero offset, so they are resolved here.
var zones = map[string]int{
	"UTC":  0,
	"GMT":  0,
	"WAT":  1 * 3600,
	"CET":  1 * 3600,
	"BST":  1 * 3600,
	"CEST": 2 * 3600,
	"CAT":  2 * 3600,
	"EET":  2 * 3600,
	"EAT":  3 * 3600,
	"IST":  5*3600 + 1800,
	"EST":  -5 * 3600,
	"EDT":  -4 * 3600,
	"CST":  -6 * 3600,
	"CDT":  -5 * 3600,
	"MST":  -7 * 3600,
	"MDT":  -6 * 3600,
	"PST":  -8 * 3600,
	"PDT":  -7 * 3600,
}

// ParseTimestamp parses a device-local log timestamp into epoch seconds.
func ParseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)

	if t, err := time.Parse(offsetLayout, s); err == nil {
		return t.Unix(), nil
	}

	fields := strings.Fields(s)
	if len(fields) == 6 {
		if offset, ok := zones[fields[4]]; ok {
			loc := time.FixedZone(fields[4], offset)
			value := strings.Join(append(fields[:4:4], fields[5]), " ")
			if t, err := time.ParseInLocation(abbrevLayout, value, loc); err == nil {
				return t.Unix(), nil
			}
		}
	}

	return 0, fmt.Errorf("unrecognized timestamp layout %q", s)
}
