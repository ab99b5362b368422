package core

// StepToward moves current one unit toward target, or not at all when they
// are equal. Inputs are valid shades, so the result needs no extra
// clamping: it always stays within one unit of current and inside the
// valid range.
func StepToward(current, target Shade) Shade {
	switch {
	case target > current:
		return current + 1
	case target < current:
		return current - 1
	default:
		return current
	}
}
