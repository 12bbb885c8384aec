package domain

import "time"

// Funeral records a funeral event for a deceased member or dependent,
// the duty assignments around it, and the attendance bookkeeping used to
// raise absence fines.
type Funeral struct {
	ID       int64     `json:"id"`
	Date     time.Time `json:"date"`
	MemberID int64     `json:"member_id"`    // bereaved member
	DeceasedRef string `json:"deceased_ref"` // member no, or "dep:<dependent id>"

	// Duty assignments by member number. Cemetery assignments are ordered;
	// the last entry anchors the next rotation.
	CemeteryAssignments []int32 `json:"cemetery_assignments"`
	FuneralAssignments  []int32 `json:"funeral_assignments"`
	RemovedMembers      []int32 `json:"removed_members"`

	EventAbsents      []int32 `json:"event_absents"`
	AssignmentAbsents []int32 `json:"assignment_absents"`
	ExtraDueMembers   []int32 `json:"extra_due_members"`
}

// Meeting is a general meeting with the member numbers recorded absent.
type Meeting struct {
	ID      int64     `json:"id"`
	Date    time.Time `json:"date"`
	Absents []int32   `json:"absents"`
}

// AttendanceRecord is one member's presence at one meeting.
type AttendanceRecord struct {
	MemberNo int32 `json:"member_no"`
	Present  bool  `json:"present"`
}

// MeetingAttendance is the attendance matrix for a single meeting.
type MeetingAttendance struct {
	Date       time.Time          `json:"date"`
	Attendance []AttendanceRecord `json:"attendance"`
}
