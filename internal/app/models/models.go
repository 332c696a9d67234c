package models

// StudentStatus is the free-standing activity flag of a student.
type StudentStatus string

const (
	StudentStatusActive   StudentStatus = "active"
	StudentStatusAlert    StudentStatus = "alert"
	StudentStatusInactive StudentStatus = "inactive"
)

// Valid reports whether s is a known student status
func (s StudentStatus) Valid() bool {
	switch s {
	case StudentStatusActive, StudentStatusAlert, StudentStatusInactive:
		return true
	}
	return false
}

// QuotaRequestStatus is informational only; approving a request does not
// grant capacity.
type QuotaRequestStatus string

const (
	QuotaRequestPending  QuotaRequestStatus = "pending"
	QuotaRequestApproved QuotaRequestStatus = "approved"
	QuotaRequestRejected QuotaRequestStatus = "rejected"
)

// Valid reports whether s is a known quota request status
func (s QuotaRequestStatus) Valid() bool {
	switch s {
	case QuotaRequestPending, QuotaRequestApproved, QuotaRequestRejected:
		return true
	}
	return false
}

// CenterStatus is derived from capacity at read time and never stored.
type CenterStatus string

const (
	CenterStatusActive   CenterStatus = "active"
	CenterStatusComplete CenterStatus = "complete"
)

// Valid reports whether s is a known center status
func (s CenterStatus) Valid() bool {
	return s == CenterStatusActive || s == CenterStatusComplete
}
