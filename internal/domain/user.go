package domain

// User is a user record as seen by the admin console. The same shape as
// Principal; kept separate because admin listings are about other accounts,
// not the session identity.
//
// IsActive is the canonical activity flag: true means the account may log in.
type User struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"isActive"`
}

// FullName returns the user's display name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
