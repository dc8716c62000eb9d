package geo

import (
	"math"

	"github.com/lintang-b-s/arterial/pkg/util"
)

const (
	earthRadiusKM = 6371.0
)

// CalculateHaversineDistance. great circle distance in km between two points in degrees
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	phi1, phi2 := util.DegreeToRadians(latOne), util.DegreeToRadians(latTwo)
	dPhi := phi2 - phi1
	dLambda := util.DegreeToRadians(longTwo - longOne)

	sinPhi, sinLambda := math.Sin(dPhi/2), math.Sin(dLambda/2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(a)))
}

// GetDestinationPoint. point reached from (lat, lon) after dist km on the initial bearing (degree)
func GetDestinationPoint(lat, lon, bearing, dist float64) (float64, float64) {
	delta := dist / earthRadiusKM
	theta := util.DegreeToRadians(bearing)
	phi1, lambda1 := util.DegreeToRadians(lat), util.DegreeToRadians(lon)

	sinPhi2 := math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(sinPhi2)
	lambda2 := lambda1 + math.Atan2(math.Sin(theta)*math.Sin(delta)*math.Cos(phi1), math.Cos(delta)-math.Sin(phi1)*sinPhi2)

	return util.RadiansToDegree(phi2), normalizeLongitude(util.RadiansToDegree(lambda2))
}

// normalizeLongitude. into [-180, 180)
func normalizeLongitude(lon float64) float64 {
	return math.Mod(lon+540, 360) - 180
}
