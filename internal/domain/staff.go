package domain

import "time"

// StaffMember represents a technician on a location's roster.
//
// ServiceIDs lists the services the member is allowed to perform.
// An empty list means open eligibility: the member can perform any
// service offered at the location. A non-empty list restricts the
// member to exactly those services.
type StaffMember struct {
	ID         string
	LocationID string
	Name       string
	IsActive   bool
	ServiceIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOpenEligibility returns true if the member can perform any service
func (s *StaffMember) HasOpenEligibility() bool {
	return len(s.ServiceIDs) == 0
}

// CanPerform reports whether the member is allowed to perform every
// requested service. An empty request matches any member.
func (s *StaffMember) CanPerform(serviceIDs []string) bool {
	if s.HasOpenEligibility() {
		return true
	}

	allowed := make(map[string]struct{}, len(s.ServiceIDs))
	for _, id := range s.ServiceIDs {
		allowed[id] = struct{}{}
	}

	for _, id := range serviceIDs {
		if _, ok := allowed[id]; !ok {
			return false
		}
	}
	return true
}
