package cloud

// linearScale maps weights onto [0, 1] over its domain.
type linearScale struct {
	min, max float64
}

// newLinearScale spans the weights of tags, unless d overrides the domain.
func newLinearScale(tags []*Tag, d *Domain) linearScale {
	if d != nil {
		return linearScale{min: d.Min, max: d.Max}
	}
	var s linearScale
	for i, t := range tags {
		if i == 0 || t.Weight < s.min {
			s.min = t.Weight
		}
		if i == 0 || t.Weight > s.max {
			s.max = t.Weight
		}
	}
	return s
}

// ratio returns the clamped position of v in the domain. A degenerate domain
// maps everything to 1, so a single tag gets the solved maximum size.
func (s linearScale) ratio(v float64) float64 {
	if s.max <= s.min {
		return 1
	}
	return clamp01((v - s.min) / (s.max - s.min))
}

// sizeRatio is weight relative to the top weight, clamped to [0, 1].
func sizeRatio(weight, maxWeight float64) float64 {
	if maxWeight <= 0 {
		return 1
	}
	return clamp01(weight / maxWeight)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
