package domain

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type User struct {
	ID        string `db:"id"`
	Username  string `db:"username"`
	Email     string `db:"email"`
	Telephone string `db:"telephone"`
	Hash      string `db:"password_hash"`
	Role      string `db:"role"`
}

// CombinedUser is the admin search row: a user joined with its customer or
// admin profile, with a derived authority string.
type CombinedUser struct {
	UserID     string `db:"user_id"`
	Username   string `db:"username"`
	Email      string `db:"email"`
	Telephone  string `db:"telephone"`
	CustomerID string `db:"customer_id"`
	AdminID    string `db:"admin_id"`
	AdminLevel int    `db:"admin_level"`
	Authority  string `db:"-"`
}

// DeriveAuthority fills Authority from the joined profile columns.
// Admin level 1 is the owner, level 2 staff; everyone else is a customer.
func (u *CombinedUser) DeriveAuthority() {
	switch {
	case u.AdminID == "":
		u.Authority = "CUSTOMER"
	case u.AdminLevel == 1:
		u.Authority = "ADMIN/OWNER"
	case u.AdminLevel == 2:
		u.Authority = "ADMIN/STAFF"
	default:
		u.Authority = "ADMIN"
	}
}
