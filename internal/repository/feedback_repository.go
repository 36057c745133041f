package repository

import (
	"context"
	"net/url"

	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/store"
)

const feedbackCollection = "feedback"

// FeedbackFilter narrows review listings; zero fields are ignored.
type FeedbackFilter struct {
	ServiceID model.ID
	UserID    model.ID
}

type FeedbackRepo struct{ Store *store.Client }

func NewFeedbackRepo(c *store.Client) *FeedbackRepo { return &FeedbackRepo{Store: c} }

// List returns reviews matching f, newest first.
func (r *FeedbackRepo) List(ctx context.Context, f FeedbackFilter) ([]model.Feedback, error) {
	q := url.Values{"_sort": {"createdAt"}, "_order": {"desc"}}
	if !f.ServiceID.IsZero() {
		q.Set("serviceId", f.ServiceID.String())
	}
	if !f.UserID.IsZero() {
		q.Set("userId", f.UserID.String())
	}
	items, _, err := store.List[model.Feedback](ctx, r.Store, feedbackCollection, q)
	return items, err
}

func (r *FeedbackRepo) Create(ctx context.Context, fb model.Feedback) (model.Feedback, error) {
	fb.ID = ""
	return store.Create[model.Feedback](ctx, r.Store, feedbackCollection, fb)
}

func (r *FeedbackRepo) Delete(ctx context.Context, id model.ID) error {
	return store.Delete(ctx, r.Store, feedbackCollection, id.String())
}
