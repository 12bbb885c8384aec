package domain

import "time"

type MemberStatus string

const (
	MemberStatusRegular        MemberStatus = "regular"
	MemberStatusFree           MemberStatus = "free"            // exempt from dues and attendance fines
	MemberStatusAttendanceFree MemberStatus = "attendance-free" // exempt from attendance fines only
)

type FineType string

const (
	FineTypeMeeting     FineType = "meeting"
	FineTypeFuneral     FineType = "funeral"
	FineTypeFuneralWork FineType = "funeral-work"
	FineTypeExtraDue    FineType = "extraDue"
)

// Member is a registered member of the society. MemberNo is the public,
// human-assigned membership number; ID is the database row id.
type Member struct {
	ID             int64         `json:"id"`
	MemberNo       int32         `json:"member_no"`
	Name           string        `json:"name"`
	Area           string        `json:"area"`
	Mobile         string        `json:"mobile"`
	Status         MemberStatus  `json:"status"`
	PreviousDue    int64         `json:"previous_due"`
	MeetingAbsents int32         `json:"meeting_absents"`
	Blacklisted    bool          `json:"blacklisted"`
	SiblingsCount  int32         `json:"siblings_count"`
	JoinedOn       time.Time     `json:"joined_on"`
	DiedOn         *time.Time    `json:"died_on,omitempty"`
	DeactivatedAt  *time.Time    `json:"deactivated_at,omitempty"`
}

// Fine is a charge raised against a member for a specific event
// (missed meeting, missed funeral, missed funeral work, or an extra due).
type Fine struct {
	ID        int64     `json:"id"`
	MemberID  int64     `json:"member_id"`
	EventID   int64     `json:"event_id"`
	EventType FineType  `json:"event_type"`
	Amount    int64     `json:"amount"`
	CreatedOn time.Time `json:"created_on"`
}

// Dependent is a family member covered by a member's funeral benefit.
type Dependent struct {
	ID           int64      `json:"id"`
	MemberID     int64      `json:"member_id"`
	Name         string     `json:"name"`
	Relationship string     `json:"relationship"`
	DiedOn       *time.Time `json:"died_on,omitempty"`
}

// MemberDue is the aggregated amount a member owes as of a given date.
type MemberDue struct {
	MemberNo        int32  `json:"member_no"`
	Name            string `json:"name"`
	PreviousDue     int64  `json:"previous_due"`
	FineTotal       int64  `json:"fine_total"`
	MembershipDue   int64  `json:"membership_due"`
	LoanInstallment int64  `json:"loan_installment"`
	TotalDue        int64  `json:"total_due"`
}

// IsActive reports whether the member is still a participating member.
func (m *Member) IsActive() bool {
	return m.DeactivatedAt == nil && m.DiedOn == nil
}

// FinableForAttendance reports whether absence fines apply to this member.
func (m *Member) FinableForAttendance() bool {
	return m.Status != MemberStatusFree && m.Status != MemberStatusAttendanceFree
}
