package memory

import (
	"context"
	"time"

	"Murmur/internal/core/comments"
	"Murmur/internal/core/pagination"
)

type commentRepo struct {
	s *Store
}

// NewCommentRepository returns a comments.Repository backed by the store
func NewCommentRepository(s *Store) comments.Repository {
	return &commentRepo{s: s}
}

func (r *commentRepo) PostExists(ctx context.Context, postID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.posts[postID]
	return ok, nil
}

func (r *commentRepo) GetByID(ctx context.Context, commentID string) (*comments.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[commentID]
	if !ok {
		return nil, comments.ErrCommentNotFound
	}
	out := *c
	out.ParentCommentID = copyString(c.ParentCommentID)
	return &out, nil
}

func (r *commentRepo) GetView(ctx context.Context, commentID string) (*comments.CommentView, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[commentID]
	if !ok {
		return nil, comments.ErrCommentNotFound
	}
	return r.s.commentViewLocked(c), nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID string, page pagination.Page) ([]*comments.CommentView, error) {
	return r.query(page, func(c *comments.Comment) bool { return c.PostID == postID }), nil
}

func (r *commentRepo) ListChildren(ctx context.Context, parentID string, page pagination.Page) ([]*comments.CommentView, error) {
	return r.query(page, func(c *comments.Comment) bool {
		return c.ParentCommentID != nil && *c.ParentCommentID == parentID
	}), nil
}

func (r *commentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return comments.ErrPostNotFound
	}
	if comment.ParentCommentID != nil {
		if _, ok := r.s.comments[*comment.ParentCommentID]; !ok {
			return comments.ErrParentNotFound
		}
	}

	stored := *comment
	stored.ParentCommentID = copyString(comment.ParentCommentID)
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *commentRepo) UpdateBody(ctx context.Context, commentID, body string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.comments[commentID]
	if !ok {
		return comments.ErrCommentNotFound
	}
	c.Body = body
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, commentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[commentID]; !ok {
		return comments.ErrCommentNotFound
	}
	if r.s.childCountLocked(commentID) > 0 {
		return comments.ErrHasReplies
	}
	delete(r.s.comments, commentID)
	return nil
}

func (r *commentRepo) query(page pagination.Page, match func(*comments.Comment) bool) []*comments.CommentView {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var matched []*comments.Comment
	for _, c := range r.s.comments {
		if match(c) {
			matched = append(matched, c)
		}
	}
	sortByTime(matched,
		func(c *comments.Comment) time.Time { return c.CreatedAt },
		func(c *comments.Comment) string { return c.ID },
		true)

	result := []*comments.CommentView{}
	for _, c := range paginate(matched, page) {
		result = append(result, r.s.commentViewLocked(c))
	}
	return result
}

func (s *Store) childCountLocked(commentID string) int {
	n := 0
	for _, c := range s.comments {
		if c.ParentCommentID != nil && *c.ParentCommentID == commentID {
			n++
		}
	}
	return n
}

func (s *Store) commentViewLocked(c *comments.Comment) *comments.CommentView {
	return &comments.CommentView{
		ID:              c.ID,
		PostID:          c.PostID,
		AuthorID:        c.AuthorID,
		AuthorUserName:  s.userNameLocked(c.AuthorID),
		Body:            c.Body,
		ParentCommentID: copyString(c.ParentCommentID),
		CreatedAt:       c.CreatedAt,
		ChildrenCount:   s.childCountLocked(c.ID),
	}
}
