package repos

import (
	"fmt"

	"bathstore/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SupportRepo struct{ db *sqlx.DB }

func NewSupportRepo(db *sqlx.DB) *SupportRepo { return &SupportRepo{db: db} }

const ticketCols = `id, user_id, support_type, description, remark, status, created_at`

func (r *SupportRepo) Create(userID, supportType, description string) (domain.SupportTicket, error) {
	t := domain.SupportTicket{
		ID:          uuid.NewString(),
		UserID:      userID,
		SupportType: supportType,
		Description: description,
		Status:      domain.TicketPending,
	}
	_, err := r.db.Exec(`
	  INSERT INTO support_tickets(id,user_id,support_type,description,status)
	  VALUES(?,?,?,?,?)`, t.ID, t.UserID, t.SupportType, t.Description, t.Status)
	return t, err
}

func (r *SupportRepo) Get(id string) (domain.SupportTicket, error) {
	var t domain.SupportTicket
	err := r.db.Get(&t, `SELECT `+ticketCols+` FROM support_tickets WHERE id=?`, id)
	return t, err
}

func (r *SupportRepo) ListAll() ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	err := r.db.Select(&out, `
	  SELECT `+ticketCols+` FROM support_tickets
	  ORDER BY datetime(created_at) DESC`)
	return out, err
}

func (r *SupportRepo) ListByUser(userID string) ([]domain.SupportTicket, error) {
	var out []domain.SupportTicket
	err := r.db.Select(&out, `
	  SELECT `+ticketCols+` FROM support_tickets
	  WHERE user_id = ?
	  ORDER BY datetime(created_at) DESC`, userID)
	return out, err
}

func (r *SupportRepo) UpdateRemark(id, remark string) error {
	res, err := r.db.Exec(`UPDATE support_tickets SET remark = ? WHERE id = ?`, remark, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s not found", id)
	}
	return nil
}

func (r *SupportRepo) UpdateStatus(id string, status domain.TicketStatus) error {
	res, err := r.db.Exec(`UPDATE support_tickets SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s not found", id)
	}
	return nil
}

func (r *SupportRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM support_tickets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("ticket %s not found", id)
	}
	return nil
}
