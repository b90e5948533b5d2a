package auth

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User is the domain entity.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Extra    string `json:"extra,omitempty"`
	Role     string `json:"role"`
	Password string `json:"-"`
}

// ProfilePatch carries the profile fields a user may change.
type ProfilePatch struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Gender *string `json:"gender"`
	Extra  *string `json:"extra"`
}

func (p ProfilePatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Gender != nil {
		u.Gender = *p.Gender
	}
	if p.Extra != nil {
		u.Extra = *p.Extra
	}
}
