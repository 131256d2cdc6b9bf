package repos

import (
	"database/sql"
	"errors"
	"strings"

	"bathstore/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrTelephoneTaken = errors.New("telephone number already exists")
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id,username,email,telephone,password_hash,role`

// ByLogin resolves a login identifier that may be a username, email, or
// telephone, in that order.
func (r *UserRepo) ByLogin(login string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users
		WHERE LOWER(username)=LOWER(?) OR LOWER(email)=LOWER(?) OR telephone=?
		LIMIT 1`, login, login, login)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM users WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateCustomer inserts a USER with its customer profile row. Duplicate
// username/email/telephone each return a distinct error so signup can say
// which field clashed.
func (r *UserRepo) CreateCustomer(username, email, telephone, hash string) (*domain.User, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(username)=LOWER(?)`, username); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrUsernameTaken
	}
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE LOWER(email)=LOWER(?)`, email); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrEmailTaken
	}
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE telephone=?`, telephone); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrTelephoneTaken
	}

	u := domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Telephone: telephone,
		Hash:      hash,
		Role:      domain.RoleUser,
	}
	if _, err := tx.Exec(`INSERT INTO users(id,username,email,telephone,password_hash,role)
		VALUES(?,?,?,?,?,?)`, u.ID, u.Username, u.Email, u.Telephone, u.Hash, u.Role); err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO customers(id,user_id) VALUES(?,?)`, uuid.NewString(), u.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
      SELECT u.id,u.username,u.email,u.telephone,u.password_hash,u.role
      FROM sessions s
      JOIN users u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// Search applies the optional name/email/telephone filters with AND
// semantics; blank filters match everything.
func (r *UserRepo) Search(name, email, telephone string) ([]domain.CombinedUser, error) {
	where := `1=1`
	args := []any{}
	if s := strings.TrimSpace(name); s != "" {
		where += ` AND LOWER(u.username) LIKE ?`
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(email); s != "" {
		where += ` AND LOWER(u.email) LIKE ?`
		args = append(args, "%"+strings.ToLower(s)+"%")
	}
	if s := strings.TrimSpace(telephone); s != "" {
		where += ` AND u.telephone LIKE ?`
		args = append(args, "%"+s+"%")
	}

	var out []domain.CombinedUser
	err := r.DB.Select(&out, `
	  SELECT u.id AS user_id, u.username, u.email, u.telephone,
	         COALESCE(c.id,'') AS customer_id,
	         COALESCE(a.id,'') AS admin_id,
	         COALESCE(a.admin_level,0) AS admin_level
	  FROM users u
	  LEFT JOIN customers c ON c.user_id = u.id
	  LEFT JOIN admins a    ON a.user_id = u.id
	  WHERE `+where+`
	  ORDER BY u.username`, args...)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].DeriveAuthority()
	}
	return out, nil
}

// IsNotFound reports whether err is the sqlx "no rows" sentinel.
func IsNotFound(err error) bool { return errors.Is(err, sql.ErrNoRows) }
