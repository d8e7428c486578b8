package domain

// ProgressPolicy holds the switchable rules applied to new progress entries.
//
// RejectNonPositive is off by default. Whether non-positive increments are
// legitimate (corrections, undo) is still awaiting a product decision.
type ProgressPolicy struct {
	RejectNonPositive bool
}

// Check returns ErrNegativeProgress when the policy is enabled and value is
// not strictly positive.
func (p ProgressPolicy) Check(value int64) error {
	if p.RejectNonPositive && value <= 0 {
		return ErrNegativeProgress
	}
	return nil
}
