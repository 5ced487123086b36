package employee

import (
	"strings"
	"time"
)

type Role string

const (
	RoleKitchen  Role = "cozinha"
	RoleCashier  Role = "caixa"
	RoleDelivery Role = "entregador"
)

func (r Role) Valid() bool {
	return r == RoleKitchen || r == RoleCashier || r == RoleDelivery
}

type Employee struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	ClockedIn bool      `json:"clocked_in"`
	CreatedAt time.Time `json:"created_at"`
}

type TimeRecord struct {
	ID         uint       `json:"id"`
	EmployeeID uint       `json:"employee_id"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
}

// Worked is the length of a closed record, or the time elapsed until now
// for an open one.
func (r TimeRecord) Worked(now time.Time) time.Duration {
	if r.ClockOut != nil {
		return r.ClockOut.Sub(r.ClockIn)
	}
	return now.Sub(r.ClockIn)
}

type SaveEmployeeRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     Role   `json:"role"`
	IsActive *bool  `json:"is_active"`
}

func (r *SaveEmployeeRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)

	switch {
	case r.Name == "":
		return ErrNameRequired
	case !strings.Contains(r.Email, "@"):
		return ErrInvalidEmail
	case len(r.Phone) > 20:
		return ErrPhoneTooLong
	case !r.Role.Valid():
		return ErrInvalidRole
	}
	return nil
}

func (r *SaveEmployeeRequest) active() bool {
	return r.IsActive == nil || *r.IsActive
}
