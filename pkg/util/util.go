package util

import (
	"context"
	"math"
)

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func DegreeToRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func RadiansToDegree(rad float64) float64 {
	return rad * 180 / math.Pi
}

// RoundFloat. half away from zero at precision decimals
func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// StopConcurrentOperation. true once ctx is done, never blocks
func StopConcurrentOperation(ctx context.Context) bool {
	return ctx.Err() != nil
}
