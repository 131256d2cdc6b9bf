package domain

type TicketStatus string

const (
	TicketPending    TicketStatus = "Pending"
	TicketInProgress TicketStatus = "In Progress"
	TicketSolved     TicketStatus = "Solved"
	TicketClosed     TicketStatus = "Closed"
)

var TicketStatuses = []TicketStatus{TicketPending, TicketInProgress, TicketSolved, TicketClosed}

func ParseTicketStatus(s string) (TicketStatus, bool) {
	switch TicketStatus(s) {
	case TicketPending, TicketInProgress, TicketSolved, TicketClosed:
		return TicketStatus(s), true
	}
	return "", false
}

type SupportTicket struct {
	ID          string       `db:"id"`
	UserID      string       `db:"user_id"`
	SupportType string       `db:"support_type"`
	Description string       `db:"description"`
	Remark      string       `db:"remark"`
	Status      TicketStatus `db:"status"`
	CreatedAt   string       `db:"created_at"`
}
