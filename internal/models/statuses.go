package models

type UserStatus string
type UserRole string
type ProductionStatus string
type MatchParty string
type EmailStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleTalent  UserRole = "talent"
	UserRoleTheater UserRole = "theater"
	UserRoleAdmin   UserRole = "admin"

	ProductionStatusPreProduction   ProductionStatus = "Pre-Production"
	ProductionStatusCasting         ProductionStatus = "Casting"
	ProductionStatusHiring          ProductionStatus = "Hiring"
	ProductionStatusCastingComplete ProductionStatus = "Casting Complete"
	ProductionStatusRehearsal       ProductionStatus = "Rehearsal"
	ProductionStatusNowPlaying      ProductionStatus = "Now Playing"
	ProductionStatusComplete        ProductionStatus = "Complete"

	MatchPartyTheater MatchParty = "theater"
	MatchPartyTalent  MatchParty = "talent"

	EmailStatusQueued EmailStatus = "queued"
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// ActiveProductionStatuses - статусы, в которых постановка участвует в матчинге.
var ActiveProductionStatuses = []ProductionStatus{
	ProductionStatusCasting,
	ProductionStatusHiring,
	ProductionStatusPreProduction,
}

// IsActiveForMatching сообщает, открыта ли постановка для подбора талантов.
func (s ProductionStatus) IsActiveForMatching() bool {
	for _, active := range ActiveProductionStatuses {
		if s == active {
			return true
		}
	}
	return false
}

func ValidProductionStatus(s string) bool {
	switch ProductionStatus(s) {
	case ProductionStatusPreProduction, ProductionStatusCasting, ProductionStatusHiring,
		ProductionStatusCastingComplete, ProductionStatusRehearsal,
		ProductionStatusNowPlaying, ProductionStatusComplete:
		return true
	}
	return false
}
