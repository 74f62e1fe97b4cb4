package models

// Standing is the single internal view of what a user may do. The stored
// record keeps role and creatorApplicationStatus as two fields.
type Standing int

const (
	StandingLearner Standing = iota
	StandingPendingCreator
	StandingCreator
	StandingAdmin
)

func StandingOf(role UserRole, status ApplicationStatus) Standing {
	switch role {
	case RoleAdmin:
		return StandingAdmin
	case RoleCreator:
		switch status {
		case ApplicationApproved:
			return StandingCreator
		case ApplicationPending:
			return StandingPendingCreator
		}
	}
	return StandingLearner
}

func (s Standing) CanAuthorCourses() bool {
	return s == StandingCreator
}

func (s Standing) String() string {
	switch s {
	case StandingPendingCreator:
		return "PendingCreator"
	case StandingCreator:
		return "Creator"
	case StandingAdmin:
		return "Admin"
	default:
		return "Learner"
	}
}
