package session

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/trezcool/coursebook/core"
)

var (
	// errors
	ErrNotFound = errors.New("session not found")
)

type (
	Repository interface {
		CreateSession(sess Session) (Session, error)
		GetSessionByID(id string) (Session, error)
		// DeleteSession removes the Session. Unknown IDs are ignored.
		DeleteSession(id string) error
		// CountSessionsByRole returns the number of open sessions per role.
		CountSessionsByRole() (map[Role]int, error)
	}

	// Service opens and closes sessions. There are no credentials to check:
	// any complete login form opens a session for the requested role.
	Service interface {
		Login(l Login) (Session, error)
		Register(r Registration) (Account, error)
		Get(id string) (Session, error)
		Close(id string) error
		CountByRole() (map[Role]int, error)
	}

	service struct {
		repo     Repository
		validate *validator.Validate
		logger   core.Logger
	}
)

var _ Service = (*service)(nil) // interface compliance check

func NewService(repo Repository, validate *validator.Validate, logger core.Logger) Service {
	return &service{
		repo:     repo,
		validate: validate,
		logger:   logger,
	}
}

func (svc *service) Login(l Login) (Session, error) {
	if err := l.Validate(svc.validate); err != nil {
		return Session{}, err
	}
	sess, err := svc.repo.CreateSession(Session{
		ID:        uuid.New().String(),
		Email:     l.Email,
		Role:      Role(l.Role),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Session{}, err
	}
	svc.logger.Info("session opened", sess)
	return sess, nil
}

// Register validates the registration form. Accounts are not stored.
func (svc *service) Register(r Registration) (Account, error) {
	if err := r.Validate(svc.validate); err != nil {
		return Account{}, err
	}
	return Account{Name: r.Name, Email: r.Email, Role: Role(r.Role)}, nil
}

func (svc *service) Get(id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}
	return svc.repo.GetSessionByID(id)
}

func (svc *service) Close(id string) error {
	if err := svc.repo.DeleteSession(id); err != nil {
		return err
	}
	svc.logger.Info("session closed: " + id)
	return nil
}

func (svc *service) CountByRole() (map[Role]int, error) {
	return svc.repo.CountSessionsByRole()
}
