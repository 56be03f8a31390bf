package memory

import (
	"context"
	"sort"

	"shareit/internal/domain/user"
	"shareit/internal/infra"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type UserRepo struct {
	s *Store
}

func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) Create(ctx context.Context, u *user.User) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emailTakenLocked(u.Email().String(), 0) {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindDuplicateKey, "email already registered", nil)
	}

	s.userSeq++
	rec := userRecord{id: s.userSeq, name: u.Name(), email: u.Email().String()}
	s.users[rec.id] = rec
	return rec.id, nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int64) (*commands.UserSnapshot, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "user not found", nil)
	}
	return &commands.UserSnapshot{ID: rec.id, Name: rec.name, Email: rec.email}, nil
}

func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.users[u.ID()]
	if !ok {
		return infra.WrapRepoErr(s.slogger, infra.KindNotFound, "user not found", nil)
	}
	if s.emailTakenLocked(u.Email().String(), u.ID()) {
		return infra.WrapRepoErr(s.slogger, infra.KindDuplicateKey, "email already registered", nil)
	}
	rec.name = u.Name()
	rec.email = u.Email().String()
	s.users[rec.id] = rec
	return nil
}

// Delete removes the user together with everything hanging off them, the
// same way the postgres schema cascades.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return infra.WrapRepoErr(s.slogger, infra.KindNotFound, "user not found", nil)
	}
	delete(s.users, id)

	for itemID, it := range s.items {
		if it.ownerID == id {
			delete(s.items, itemID)
			s.dropItemDependentsLocked(itemID)
		}
	}
	for bookingID, b := range s.bookings {
		if b.bookerID == id {
			delete(s.bookings, bookingID)
		}
	}
	for commentID, c := range s.comments {
		if c.authorID == id {
			delete(s.comments, commentID)
		}
	}
	for requestID, req := range s.requests {
		if req.requesterID == id {
			delete(s.requests, requestID)
		}
	}
	return nil
}

type UserViewRepo struct {
	s *Store
}

func NewUserViewRepo(s *Store) *UserViewRepo {
	return &UserViewRepo{s: s}
}

func (r *UserViewRepo) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "user not found", nil)
	}
	return &queries.UserView{ID: rec.id, Name: rec.name, Email: rec.email}, nil
}

func (r *UserViewRepo) FindAll(ctx context.Context) ([]queries.UserView, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]queries.UserView, 0, len(s.users))
	for _, rec := range s.users {
		views = append(views, queries.UserView{ID: rec.id, Name: rec.name, Email: rec.email})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func (s *Store) emailTakenLocked(email string, selfID int64) bool {
	for _, rec := range s.users {
		if rec.email == email && rec.id != selfID {
			return true
		}
	}
	return false
}

func (s *Store) dropItemDependentsLocked(itemID int64) {
	for bookingID, b := range s.bookings {
		if b.itemID == itemID {
			delete(s.bookings, bookingID)
		}
	}
	for commentID, c := range s.comments {
		if c.itemID == itemID {
			delete(s.comments, commentID)
		}
	}
}
