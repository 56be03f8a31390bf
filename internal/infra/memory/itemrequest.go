package memory

import (
	"context"
	"sort"

	"shareit/internal/domain/itemrequest"
	"shareit/internal/infra"
	"shareit/internal/usecase/queries"
)

type ItemRequestRepo struct {
	s *Store
}

func NewItemRequestRepo(s *Store) *ItemRequestRepo {
	return &ItemRequestRepo{s: s}
}

func (r *ItemRequestRepo) Create(ctx context.Context, req *itemrequest.ItemRequest) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[req.RequesterID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "requester does not exist", nil)
	}

	s.requestSeq++
	rec := requestRecord{
		id:          s.requestSeq,
		description: req.Description(),
		requesterID: req.RequesterID(),
		created:     req.Created(),
	}
	s.requests[rec.id] = rec
	return rec.id, nil
}

func (r *ItemRequestRepo) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.requests[id]
	return ok, nil
}

type ItemRequestViewRepo struct {
	s *Store
}

func NewItemRequestViewRepo(s *Store) *ItemRequestViewRepo {
	return &ItemRequestViewRepo{s: s}
}

func (r *ItemRequestViewRepo) FindByID(ctx context.Context, id int64) (*queries.ItemRequestRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.slogger, infra.KindNotFound, "item request not found", nil)
	}
	row := toRequestRow(rec)
	return &row, nil
}

func (r *ItemRequestViewRepo) FindByRequester(ctx context.Context, requesterID int64) ([]queries.ItemRequestRow, error) {
	return r.list(func(rec requestRecord) bool { return rec.requesterID == requesterID }), nil
}

func (r *ItemRequestViewRepo) FindByOthers(ctx context.Context, actorID int64) ([]queries.ItemRequestRow, error) {
	return r.list(func(rec requestRecord) bool { return rec.requesterID != actorID }), nil
}

func (r *ItemRequestViewRepo) FindAnswers(ctx context.Context, requestIDs []int64) ([]queries.RequestAnswerRow, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[int64]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}

	rows := make([]queries.RequestAnswerRow, 0)
	for _, rec := range s.items {
		if rec.requestID == nil || !wanted[*rec.requestID] {
			continue
		}
		rows = append(rows, queries.RequestAnswerRow{
			RequestID: *rec.requestID,
			ItemID:    rec.id,
			ItemName:  rec.name,
			OwnerID:   rec.ownerID,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows, nil
}

func (r *ItemRequestViewRepo) list(match func(requestRecord) bool) []queries.ItemRequestRow {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]queries.ItemRequestRow, 0)
	for _, rec := range s.requests {
		if match(rec) {
			rows = append(rows, toRequestRow(rec))
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Created.Equal(rows[j].Created) {
			return rows[i].Created.After(rows[j].Created)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows
}

func toRequestRow(rec requestRecord) queries.ItemRequestRow {
	return queries.ItemRequestRow{
		ID:          rec.id,
		Description: rec.description,
		RequesterID: rec.requesterID,
		Created:     rec.created,
	}
}
