package costfunction

import (
	"math"

	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
	"github.com/lintang-b-s/arterial/pkg/util"
)

// TravelTimeTable. baseline lookup, ok == false when the (segment, bucket) pair has no data
type TravelTimeTable interface {
	TravelTime(segmentID int64, bucket pkg.Bucket) (float64, bool)
}

type Prediction struct {
	Minutes     float64    `json:"minutes"`
	Reliability float64    `json:"reliability"`
	Bucket      pkg.Bucket `json:"bucket"`
	Hour        int        `json:"hour"`
	Weekday     int        `json:"weekday"`
	FromTable   bool       `json:"from_table"`
}

// TravelTimePredictor. time dependent travel time of a segment:
// baseline (table or distance/speed fallback) * day factor * hour factor * random multiplier.
type TravelTimePredictor struct {
	table      TravelTimeTable
	multiplier Multiplier
	clock      Clock
}

func NewTravelTimePredictor(table TravelTimeTable, multiplier Multiplier, clock Clock) *TravelTimePredictor {
	if multiplier == nil {
		multiplier = FixedMultiplier(1.0)
	}
	if clock == nil {
		clock = SystemClock
	}
	return &TravelTimePredictor{
		table:      table,
		multiplier: multiplier,
		clock:      clock,
	}
}

// WithTable. predictor sharing multiplier and clock but reading another table
func (tf *TravelTimePredictor) WithTable(table TravelTimeTable) *TravelTimePredictor {
	return &TravelTimePredictor{
		table:      table,
		multiplier: tf.multiplier,
		clock:      tf.clock,
	}
}

// Resolve. hour and weekday of d, unspecified fields taken from the predictor clock
func (tf *TravelTimePredictor) Resolve(d Departure) (int, int) {
	return d.Resolve(tf.clock())
}

// BaselineMinutes. table minutes for (segment, bucket), or length at 30 km/h when absent
func (tf *TravelTimePredictor) BaselineMinutes(seg da.Segment, bucket pkg.Bucket) (float64, bool) {
	if tf.table != nil {
		if minutes, ok := tf.table.TravelTime(seg.ID, bucket); ok {
			return minutes, true
		}
	}
	return (seg.LengthKm / pkg.DEFAULT_SPEED_KMH) * 60, false
}

// Reliability. 90 at noon, minus 2 per hour away from noon. not clamped.
func Reliability(hour int) float64 {
	return pkg.MAX_RELIABILITY - 2*math.Abs(float64(hour-12))
}

func (tf *TravelTimePredictor) Predict(seg da.Segment, hour, weekday int) Prediction {
	bucket := ClassifyBucket(hour)
	baseline, fromTable := tf.BaselineMinutes(seg, bucket)

	dayFactor, hourFactor := AdjustmentFactors(hour, weekday)
	minutes := baseline * dayFactor * hourFactor * tf.multiplier.Next()

	return Prediction{
		Minutes:     util.RoundFloat(minutes, 1),
		Reliability: Reliability(hour),
		Bucket:      bucket,
		Hour:        hour,
		Weekday:     weekday,
		FromTable:   fromTable,
	}
}

func (tf *TravelTimePredictor) PredictAt(seg da.Segment, d Departure) Prediction {
	hour, weekday := tf.Resolve(d)
	return tf.Predict(seg, hour, weekday)
}

// AdvanceHour. hour at which the next segment is entered after travelling minutes from hour
func AdvanceHour(hour int, minutes float64) int {
	return (hour + int(math.Floor(minutes/60))) % 24
}
