package services

import (
	"errors"
	"fmt"
	"strings"

	"bathstore/internal/domain"
	"bathstore/internal/repos"
)

var ErrNotYourTicket = errors.New("ticket does not belong to you")

type SupportService struct {
	Tickets *repos.SupportRepo
}

func NewSupportService(tickets *repos.SupportRepo) *SupportService {
	return &SupportService{Tickets: tickets}
}

func (s *SupportService) Create(userID, supportType, description string) (domain.SupportTicket, error) {
	supportType = strings.TrimSpace(supportType)
	description = strings.TrimSpace(description)
	if supportType == "" || description == "" {
		return domain.SupportTicket{}, errors.New("support type and description are required")
	}
	return s.Tickets.Create(userID, supportType, description)
}

func (s *SupportService) ListAll() ([]domain.SupportTicket, error) {
	return s.Tickets.ListAll()
}

func (s *SupportService) ListByUser(userID string) ([]domain.SupportTicket, error) {
	return s.Tickets.ListByUser(userID)
}

func (s *SupportService) UpdateRemark(id, remark string) error {
	return s.Tickets.UpdateRemark(id, strings.TrimSpace(remark))
}

func (s *SupportService) UpdateStatus(id, status string) error {
	st, ok := domain.ParseTicketStatus(status)
	if !ok {
		return fmt.Errorf("unknown ticket status %q", status)
	}
	return s.Tickets.UpdateStatus(id, st)
}

// DeleteOwn removes a ticket only if it belongs to userID; admins use Delete.
func (s *SupportService) DeleteOwn(id, userID string) error {
	t, err := s.Tickets.Get(id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return ErrNotYourTicket
	}
	return s.Tickets.Delete(id)
}

func (s *SupportService) Delete(id string) error {
	return s.Tickets.Delete(id)
}
