// Package gain provides amplitude helpers for plugin run loops.
// Nothing here allocates.
package gain

import "math"

// MinDB is the floor below which a gain is treated as silence.
const MinDB = -90.0

// DbToLinear32 converts decibels to a linear coefficient.
// Values at or below MinDB return 0.
func DbToLinear32(db float32) float32 {
	if db <= MinDB {
		return 0
	}
	return float32(math.Pow(10.0, float64(db)*0.05))
}

// LinearToDb32 converts a linear amplitude to decibels, clamped at MinDB.
func LinearToDb32(linear float32) float32 {
	if linear <= 0 {
		return MinDB
	}
	db := 20.0 * float32(math.Log10(float64(linear)))
	if db < MinDB {
		return MinDB
	}
	return db
}

// RampTo writes src scaled by a coefficient moving linearly from start to end
// into dst. The last frame is scaled by exactly end. Only the overlapping
// length of src and dst is processed.
func RampTo(dst, src []float32, start, end float32) {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	if n == 0 {
		return
	}

	step := (end - start) / float32(n)
	g := start
	for i := 0; i < n-1; i++ {
		g += step
		dst[i] = src[i] * g
	}
	dst[n-1] = src[n-1] * end
}

// Peak returns the largest absolute sample value in buf.
func Peak(buf []float32) float32 {
	var peak float32
	for _, s := range buf {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}
