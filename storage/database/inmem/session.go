package inmemdb

import (
	"github.com/trezcool/coursebook/core/session"
)

type sessionRepository struct {
	db *sessionTable
}

var _ session.Repository = (*sessionRepository)(nil) // interface compliance check

func NewSessionRepository(db *DB) session.Repository {
	return &sessionRepository{db: db.session}
}

func (repo *sessionRepository) CreateSession(sess session.Session) (session.Session, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[sess.ID] = &sess
	return sess, nil
}

func (repo *sessionRepository) GetSessionByID(id string) (session.Session, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sess, ok := repo.db.table[id]; ok {
		return *sess, nil
	}
	return session.Session{}, session.ErrNotFound
}

func (repo *sessionRepository) DeleteSession(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.table, id)
	return nil
}

func (repo *sessionRepository) CountSessionsByRole() (map[session.Role]int, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	counts := make(map[session.Role]int)
	for _, sess := range repo.db.table {
		counts[sess.Role]++
	}
	return counts, nil
}
