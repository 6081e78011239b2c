package domain

// Status is the payment status shared by contracts and invoices.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusOverdue    Status = "overdue"
	StatusWrittenOff Status = "written-off"
)

// Valid reports whether s is one of the known statuses. Transitions between
// valid statuses are unrestricted; only the derivation pass moves records
// unilaterally (pending to overdue).
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusOverdue, StatusWrittenOff:
		return true
	}
	return false
}

// Derive returns the status a record should carry on today's date: a pending
// record whose due date has passed reads as overdue, everything else is
// unchanged. Comparison is on civil dates, never timestamps. Idempotent.
func (s Status) Derive(dueDate Date, today Date) Status {
	if s == StatusPending && dueDate.Before(today) {
		return StatusOverdue
	}
	return s
}
