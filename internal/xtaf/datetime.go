package xtaf

import "time"

// DateTime is the decoded form of an XTAF packed date/time pair,
// grounded on uxtaf.c's struct datetime_s / dosdati().
type DateTime struct {
	Year, Month, Day       uint16
	Hour, Minute, Second   uint16
}

// DecodeDateTime unpacks a 16-bit date and 16-bit time field into their
// component year/month/day/hour/minute/second values.
//
// date: bits 9-15 year offset from 1980, bits 5-8 month, bits 0-4 day.
// time: bits 11-15 hour, bits 5-10 minute, bits 0-4 second/2.
func DecodeDateTime(date, t uint16) DateTime {
	return DateTime{
		Year:   (date >> 9) + 1980,
		Month:  (date >> 5) & 0x000f,
		Day:    date & 0x001f,
		Hour:   t >> 11,
		Minute: (t >> 5) & 0x003f,
		Second: (t & 0x001f) << 1,
	}
}

// Time converts the decoded fields into a time.Time in UTC. Zero-valued
// entries (as found in an empty/unused directory entry) still produce a
// valid, if meaningless, time.Time rather than panicking.
func (d DateTime) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), 0, time.UTC)
}
