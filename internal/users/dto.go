package users

// User is one account row from the admin user list. The backend uses the
// phone number as the login name and sends these fields in snake_case.
type User struct {
	ID         int64  `json:"id"`
	Phone      string `json:"phone"`
	IsStaff    bool   `json:"is_staff"`
	IsActive   bool   `json:"is_active"`
	DateJoined string `json:"date_joined"`
	LastLogin  string `json:"last_login"`
}

// CreateUserInput registers a new account. Staff accounts see the admin
// console; everyone else is a storefront customer.
type CreateUserInput struct {
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
	IsStaff  bool   `json:"is_staff"`
}

// UpdateUserInput carries a partial update. Nil fields are left unchanged,
// which is why everything is a pointer; an empty password would otherwise be
// indistinguishable from "keep the current one".
type UpdateUserInput struct {
	Phone    *string `json:"phone,omitempty"`
	Password *string `json:"password,omitempty"`
	IsStaff  *bool   `json:"is_staff,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}
