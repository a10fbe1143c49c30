package domain

import "time"

// ContactStatus tracks a tele-sales prospect through outreach.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusConverted  ContactStatus = "converted"
	ContactStatusDropped    ContactStatus = "dropped"
)

// CallOutcome enumerates results of a logged call.
type CallOutcome string

const (
	OutcomeNoAnswer      CallOutcome = "no_answer"
	OutcomeInterested    CallOutcome = "interested"
	OutcomeNotInterested CallOutcome = "not_interested"
	OutcomeFollowUp      CallOutcome = "follow_up"
	OutcomeConverted     CallOutcome = "converted"
)

// ValidCallOutcome reports whether o is a known outcome value.
func ValidCallOutcome(o CallOutcome) bool {
	switch o {
	case OutcomeNoAnswer, OutcomeInterested, OutcomeNotInterested, OutcomeFollowUp, OutcomeConverted:
		return true
	}
	return false
}

// Contact is a tele-sales prospect owned by a salesperson.
type Contact struct {
	ID          string
	Name        string
	Company     string
	Phone       string
	Email       string
	Status      ContactStatus
	Salesperson string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CallLog records one outreach call against a contact.
type CallLog struct {
	ID         string
	ContactID  string
	Outcome    CallOutcome
	Notes      string
	FollowUpAt *time.Time
	CalledAt   time.Time
	CreatedAt  time.Time
}
