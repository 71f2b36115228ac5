package domain

import "time"

type Staff struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}

func (s *Staff) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Qualification states that a staff member can perform a service.
type Qualification struct {
	ID              int64  `json:"id"`
	StaffID         int64  `json:"staffId"`
	StaffName       string `json:"staffName,omitempty"`
	ServiceID       int64  `json:"serviceId"`
	ServiceName     string `json:"serviceName,omitempty"`
	ExperienceYears int32  `json:"experienceYears"`
}
