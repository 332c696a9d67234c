package models

// CapacityStatus derives a center's status from its capacity counters:
// a center without capacity, or without free slots, is complete.
func CapacityStatus(total, available int) CenterStatus {
	if total == 0 {
		return CenterStatusComplete
	}
	if available > 0 {
		return CenterStatusActive
	}
	return CenterStatusComplete
}

// InitialAvailableCapacity is the available capacity of a new center: it
// starts fully open.
func InitialAvailableCapacity(total int) int {
	return total
}

// ResolveAvailableCapacity computes the available capacity after an update.
//
// When the update carries a new total, the number of occupied slots
// (oldTotal - oldAvailable, floored at zero) is kept and the result is
// clamped at zero. Otherwise an explicit newAvailable is taken as is and,
// lacking that, the old value stays.
func ResolveAvailableCapacity(oldTotal, oldAvailable int, newTotal, newAvailable *int) int {
	if newTotal != nil {
		occupied := max(0, oldTotal-oldAvailable)
		return max(0, *newTotal-occupied)
	}
	if newAvailable != nil {
		return *newAvailable
	}
	return oldAvailable
}
