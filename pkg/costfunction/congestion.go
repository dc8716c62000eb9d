package costfunction

import (
	"github.com/lintang-b-s/arterial/pkg"
	da "github.com/lintang-b-s/arterial/pkg/datastructure"
)

// CongestionClassifier. compares the predicted time with the predicted time of a fixed
// off-peak reference instant (wednesday 14:00). the reference is recomputed per call, so two
// calls near a threshold can disagree unless the multiplier is fixed.
type CongestionClassifier struct {
	predictor *TravelTimePredictor
}

func NewCongestionClassifier(predictor *TravelTimePredictor) *CongestionClassifier {
	return &CongestionClassifier{predictor: predictor}
}

func (cc *CongestionClassifier) Classify(seg da.Segment, hour, weekday int) pkg.CongestionLevel {
	predicted := cc.predictor.Predict(seg, hour, weekday).Minutes
	reference := cc.predictor.Predict(seg, pkg.REFERENCE_HOUR, pkg.REFERENCE_WEEKDAY).Minutes

	ratio := 1.0
	if reference > 0 {
		ratio = predicted / reference
	}
	return ClassifyRatio(ratio)
}

func (cc *CongestionClassifier) ClassifyAt(seg da.Segment, d Departure) pkg.CongestionLevel {
	hour, weekday := cc.predictor.Resolve(d)
	return cc.Classify(seg, hour, weekday)
}

func ClassifyRatio(ratio float64) pkg.CongestionLevel {
	switch {
	case ratio > pkg.DENSE_RATIO_THRESHOLD:
		return pkg.DENSE
	case ratio > pkg.MODERATE_RATIO_THRESHOLD:
		return pkg.MODERATE
	default:
		return pkg.FREE
	}
}

// Overall. heaviest level present, FREE for no levels
func Overall(levels ...pkg.CongestionLevel) pkg.CongestionLevel {
	overall := pkg.FREE
	for _, l := range levels {
		if l > overall {
			overall = l
		}
	}
	return overall
}
