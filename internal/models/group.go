package models

// Group is a set of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// CreatedBy is the member ID of the profile that created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Role is a member's privilege level within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Member is a person's profile.
//
// A member with an empty AuthUserID is a placeholder: someone added to a group
// who has not signed in. Placeholders can only be edited by a group admin.
type Member struct {
	// ID is the unique identifier for the profile (UUID format).
	ID string

	// DisplayName is how the member is shown to others.
	DisplayName string

	// Email is optional and stored lower-cased. Not unique.
	Email string

	// AuthUserID links the profile to an authenticated identity.
	// Empty for placeholders.
	AuthUserID string

	// PaymentHandle is optional free-form payment metadata (e.g., "@venmo-name").
	PaymentHandle string

	// CreatedAt is the Unix timestamp when the profile was created.
	CreatedAt int64
}

// IsPlaceholder reports whether the member has no linked identity.
func (m *Member) IsPlaceholder() bool {
	return m.AuthUserID == ""
}

// Membership places a member in a group. Unique per (GroupID, MemberID).
type Membership struct {
	GroupID  string
	MemberID string
	Role     Role

	// Authenticated mirrors whether the member had a linked identity when
	// the membership was created.
	Authenticated bool

	// JoinedAt is the Unix timestamp when the membership was created.
	JoinedAt int64
}

// IsAdmin reports whether the membership grants privileged operations.
func (m *Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}
