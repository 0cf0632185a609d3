package xtaf_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaflab/xtafkit/internal/xtaf"
)

func TestDecodeDateTime_Totality(t *testing.T) {
	for _, date := range []uint16{0x0000, 0xffff, 0x1234, 0x8421} {
		for _, tm := range []uint16{0x0000, 0xffff, 0x1234, 0x8421} {
			dt := xtaf.DecodeDateTime(date, tm)
			require.GreaterOrEqual(t, dt.Year, uint16(1980))
			require.LessOrEqual(t, dt.Month, uint16(15))
			require.LessOrEqual(t, dt.Day, uint16(31))
			require.LessOrEqual(t, dt.Hour, uint16(31))
			require.LessOrEqual(t, dt.Minute, uint16(63))
			require.Zero(t, dt.Second%2)
			require.LessOrEqual(t, dt.Second, uint16(62))
		}
	}
}

func TestDecodeDateTime_ExhaustiveSecondParity(t *testing.T) {
	for tm := 0; tm <= math.MaxUint16; tm++ {
		dt := xtaf.DecodeDateTime(0, uint16(tm))
		require.Zero(t, dt.Second%2, "second must always be even, got %d for time=0x%04x", dt.Second, tm)
	}
}

func TestDecodeDateTime_KnownValue(t *testing.T) {
	// year 2006 (bits 15-9 = 26), month 3, day 4; hour 10, minute 5, second 20 (raw 10).
	date := uint16(26<<9 | 3<<5 | 4)
	tm := uint16(10<<11 | 5<<5 | 10)

	dt := xtaf.DecodeDateTime(date, tm)
	require.Equal(t, uint16(2006), dt.Year)
	require.Equal(t, uint16(3), dt.Month)
	require.Equal(t, uint16(4), dt.Day)
	require.Equal(t, uint16(10), dt.Hour)
	require.Equal(t, uint16(5), dt.Minute)
	require.Equal(t, uint16(20), dt.Second)
}
