package domain

import "time"

// Officer roles recognised by the role middleware.
const (
	RoleChairman      = "chairman"
	RoleSecretary     = "secretary"
	RoleViceSecretary = "vice-secretary"
	RoleTreasurer     = "treasurer"
	RoleLoanTreasurer = "loan-treasurer"
	RoleSpeaker       = "speaker"
)

// Officer is a member holding one or more administrative roles, with a
// password-protected account for the back office.
type Officer struct {
	ID            int64      `json:"id"`
	MemberID      int64      `json:"member_id"`
	MemberNo      int32      `json:"member_no"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-"`
	Roles         []string   `json:"roles"`
	Area          string     `json:"area,omitempty"` // for area-scoped roles
	CreatedOn     time.Time  `json:"created_on"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

// HasRole reports whether the officer holds the given role.
func (o *Officer) HasRole(role string) bool {
	for _, r := range o.Roles {
		if r == role {
			return true
		}
	}
	return false
}
