package core

// Category is a blood-pressure classification band.
type Category string

const (
	CategoryNormal     Category = "normal"
	CategoryElevated   Category = "elevated"
	CategoryHighStage1 Category = "high-stage1"
	CategoryHighStage2 Category = "high-stage2"
)

// Classify places a systolic/diastolic pair in a band. The checks run in
// order, so a diastolic of 80-89 is stage 1 even with a systolic of 140 or more.
func Classify(systolic, diastolic int) Category {
	switch {
	case systolic < 120 && diastolic < 80:
		return CategoryNormal
	case systolic < 130 && diastolic < 80:
		return CategoryElevated
	case (systolic >= 130 && systolic < 140) || (diastolic >= 80 && diastolic < 90):
		return CategoryHighStage1
	default:
		return CategoryHighStage2
	}
}

// Category classifies the reading.
func (r Reading) Category() Category {
	return Classify(r.Systolic, r.Diastolic)
}
