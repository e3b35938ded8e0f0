package production

import "github.com/google/uuid"

// IsCoverageCandidate reports whether prior can have claimed demand that o
// must not count again: prior was created earlier, is not cancelled, and
// its dispatch window overlaps o's.
func IsCoverageCandidate(o, prior *ProductionOrder) bool {
	if prior.ID == o.ID {
		return false
	}
	if prior.Status == StatusCancelled {
		return false
	}
	if prior.Sequence >= o.Sequence {
		return false
	}
	return o.Window.Overlaps(prior.Window)
}

// CandidateCoverage is the claim of one prior production order
type CandidateCoverage struct {
	ProductionOrderID uuid.UUID
	Window            DispatchWindow
	Covered           int64
}

// PreviousCoverage is the largest claim among prior orders, zero without any.
// Prior orders may claim the same order lines, so their claims are not summed.
func PreviousCoverage(claims []CandidateCoverage) int64 {
	var best int64
	for _, c := range claims {
		if c.Covered > best {
			best = c.Covered
		}
	}
	return best
}
