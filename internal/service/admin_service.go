package service

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/survivor-api/internal/domain/entity"
	"github.com/yourusername/survivor-api/internal/domain/repository"
	apperrors "github.com/yourusername/survivor-api/internal/pkg/errors"
)

// Фильтры получателей рассылки
const (
	BroadcastFilterAll    = "all"
	BroadcastFilterActive = "active"
	BroadcastFilterPaid   = "paid"
	BroadcastFilterUnpaid = "unpaid"
)

// UserPatchInput — частичное админское обновление пользователя
type UserPatchInput struct {
	IsActive *bool
	IsAdmin  *bool
}

// AdminEntryFilter — фильтры админского списка заявок
type AdminEntryFilter struct {
	UserID         *uint
	ShowEliminated *bool
}

// BroadcastResult — итог рассылки
type BroadcastResult struct {
	Filter     string `json:"filter"`
	Recipients int    `json:"recipients"`
	Sent       int    `json:"sent"`
}

// AdminService — административные операции над пользователями и заявками
// плюс email-рассылки по когортам
type AdminService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository
	email     EmailService
}

// NewAdminService создает новый админский сервис
func NewAdminService(
	userRepo repository.UserRepository,
	entryRepo repository.EntryRepository,
	email EmailService,
) *AdminService {
	return &AdminService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		email:     email,
	}
}

// ListUsers возвращает всех пользователей
func (s *AdminService) ListUsers() ([]entity.User, error) {
	return s.userRepo.List()
}

// PatchUser применяет частичное обновление флагов пользователя
func (s *AdminService) PatchUser(userID uint, input UserPatchInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsAdmin != nil {
		user.IsAdmin = *input.IsAdmin
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListEntries возвращает заявки с админскими фильтрами
func (s *AdminService) ListEntries(filter AdminEntryFilter) ([]entity.Entry, error) {
	return s.entryRepo.List(repository.EntryListFilter{
		UserID:     filter.UserID,
		Eliminated: filter.ShowEliminated,
	})
}

// SetEntryPayment проставляет флаг оплаты заявки
func (s *AdminService) SetEntryPayment(entryID uint, isPaid bool) (*entity.Entry, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	entry.IsPaid = isPaid
	if err := s.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// SetEntryElimination проставляет флаг вылета заявки. Единственный путь,
// которым вылет можно снять: финализация ставит его только в одну сторону.
func (s *AdminService) SetEntryElimination(entryID uint, isEliminated bool) (*entity.Entry, error) {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	entry.IsEliminated = isEliminated
	if err := s.entryRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Broadcast отправляет письмо когорте пользователей. Когорты paid/unpaid
// определяются по флагам оплаты заявок пользователя.
func (s *AdminService) Broadcast(ctx context.Context, filter, subject, body string) (*BroadcastResult, error) {
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: subject and body are required", apperrors.ErrValidation)
	}

	recipients, err := s.resolveRecipients(filter)
	if err != nil {
		return nil, err
	}

	sent := 0
	if len(recipients) > 0 {
		sent, err = s.email.SendBroadcast(ctx, recipients, subject, body)
		if err != nil {
			return nil, fmt.Errorf("broadcast failed: %w", err)
		}
	}

	log.Printf("[AdminService] Рассылка filter=%s: отправлено %d из %d", filter, sent, len(recipients))
	return &BroadcastResult{Filter: filter, Recipients: len(recipients), Sent: sent}, nil
}

func (s *AdminService) resolveRecipients(filter string) ([]string, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, err
	}

	switch filter {
	case BroadcastFilterAll:
		return collectEmails(users, nil), nil
	case BroadcastFilterActive:
		active := map[uint]bool{}
		for _, u := range users {
			active[u.ID] = u.IsActive
		}
		return collectEmails(users, func(u entity.User) bool { return active[u.ID] }), nil
	case BroadcastFilterPaid, BroadcastFilterUnpaid:
		paidUsers, err := s.usersWithPaidEntries()
		if err != nil {
			return nil, err
		}
		wantPaid := filter == BroadcastFilterPaid
		return collectEmails(users, func(u entity.User) bool { return paidUsers[u.ID] == wantPaid }), nil
	default:
		return nil, fmt.Errorf("%w: unknown broadcast filter %q", apperrors.ErrValidation, filter)
	}
}

// usersWithPaidEntries возвращает множество пользователей, у которых есть
// хотя бы одна оплаченная заявка
func (s *AdminService) usersWithPaidEntries() (map[uint]bool, error) {
	paid := true
	entries, err := s.entryRepo.List(repository.EntryListFilter{Paid: &paid})
	if err != nil {
		return nil, err
	}
	out := make(map[uint]bool, len(entries))
	for _, e := range entries {
		out[e.UserID] = true
	}
	return out, nil
}

func collectEmails(users []entity.User, keep func(entity.User) bool) []string {
	emails := make([]string, 0, len(users))
	for _, u := range users {
		if u.Email == "" {
			continue
		}
		if keep != nil && !keep(u) {
			continue
		}
		emails = append(emails, u.Email)
	}
	return emails
}
