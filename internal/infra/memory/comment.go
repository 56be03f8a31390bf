package memory

import (
	"context"

	"shareit/internal/domain/comment"
	"shareit/internal/infra"
)

type CommentRepo struct {
	s *Store
}

func NewCommentRepo(s *Store) *CommentRepo {
	return &CommentRepo{s: s}
}

func (r *CommentRepo) Create(ctx context.Context, c *comment.Comment) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[c.ItemID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "item does not exist", nil)
	}
	if _, ok := s.users[c.AuthorID()]; !ok {
		return 0, infra.WrapRepoErr(s.slogger, infra.KindForeignKeyViolated, "author does not exist", nil)
	}

	s.commentSeq++
	rec := commentRecord{
		id:       s.commentSeq,
		text:     c.Text(),
		itemID:   c.ItemID(),
		authorID: c.AuthorID(),
		created:  c.Created(),
	}
	s.comments[rec.id] = rec
	return rec.id, nil
}
