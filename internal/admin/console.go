// Package admin is the catalog and review console. Every operation checks
// the acting user first; only administrators get past the gate.
package admin

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

var (
	ErrAuthRequired     = errors.New("Authorization required. Sign in as administrator.")
	ErrAccessRestricted = errors.New("Access restricted. Administrator role is required.")
	// ErrNotConfirmed is returned when a destructive action was declined.
	ErrNotConfirmed = errors.New("admin: action not confirmed")
)

// NewServiceRating is the rating every new catalog entry starts with.
const NewServiceRating = 5

// Gate lets administrators through.
func Gate(actor *model.User) error {
	if actor == nil {
		return ErrAuthRequired
	}
	if !actor.IsAdmin() {
		return ErrAccessRestricted
	}
	return nil
}

type ServiceStore interface {
	AllSorted(ctx context.Context, field string) ([]model.Service, error)
	GetByID(ctx context.Context, id model.ID) (model.Service, error)
	Create(ctx context.Context, s model.Service) (model.Service, error)
	Replace(ctx context.Context, id model.ID, s model.Service) (model.Service, error)
	Delete(ctx context.Context, id model.ID) error
}

type UserLister interface {
	All(ctx context.Context) ([]model.User, error)
}

type ReviewStore interface {
	List(ctx context.Context, f repository.FeedbackFilter) ([]model.Feedback, error)
	Delete(ctx context.Context, id model.ID) error
}

// Confirm asks the operator to confirm a destructive action.
type Confirm func() bool

// Console bundles the collections the admin screens work on.
type Console struct {
	Services ServiceStore
	Users    UserLister
	Reviews  ReviewStore
}

func NewConsole(s ServiceStore, u UserLister, r ReviewStore) *Console {
	return &Console{Services: s, Users: u, Reviews: r}
}

// ListServices returns the catalog sorted by title.
func (c *Console) ListServices(ctx context.Context, actor *model.User) ([]model.Service, error) {
	if err := Gate(actor); err != nil {
		return nil, err
	}
	return c.Services.AllSorted(ctx, "title")
}

// relist re-fetches the canonical list after a write. A failure is logged;
// the write itself already succeeded.
func (c *Console) relist(ctx context.Context) []model.Service {
	list, err := c.Services.AllSorted(ctx, "title")
	if err != nil {
		logger.Warn(ctx, "service list refresh failed", zap.Error(err))
		return nil
	}
	return list
}

// Create validates the draft and adds a service with the starting rating.
func (c *Console) Create(ctx context.Context, actor *model.User, d ServiceDraft) (model.Service, []model.Service, error) {
	if err := Gate(actor); err != nil {
		return model.Service{}, nil, err
	}
	if err := ValidateDraft(d); err != nil {
		return model.Service{}, nil, err
	}
	created, err := c.Services.Create(ctx, d.ToService(NewServiceRating))
	if err != nil {
		logger.Error(ctx, "service create failed", err)
		return model.Service{}, nil, fmt.Errorf("create service: %w", err)
	}
	logger.Info(ctx, "service created", zap.String("service_id", created.ID.String()), zap.String("by", actor.ID.String()))
	return created, c.relist(ctx), nil
}

// Update replaces the whole service document. The current rating is
// carried over since the form does not edit it.
func (c *Console) Update(ctx context.Context, actor *model.User, id model.ID, d ServiceDraft) (model.Service, []model.Service, error) {
	if err := Gate(actor); err != nil {
		return model.Service{}, nil, err
	}
	if err := ValidateDraft(d); err != nil {
		return model.Service{}, nil, err
	}
	current, err := c.Services.GetByID(ctx, id)
	if err != nil {
		return model.Service{}, nil, fmt.Errorf("load service: %w", err)
	}
	rating := current.Rating
	if rating == 0 {
		rating = NewServiceRating
	}
	updated, err := c.Services.Replace(ctx, id, d.ToService(rating))
	if err != nil {
		logger.Error(ctx, "service update failed", err, zap.String("service_id", id.String()))
		return model.Service{}, nil, fmt.Errorf("update service: %w", err)
	}
	return updated, c.relist(ctx), nil
}

// Delete removes a service once confirm returns true.
func (c *Console) Delete(ctx context.Context, actor *model.User, id model.ID, confirm Confirm) ([]model.Service, error) {
	if err := Gate(actor); err != nil {
		return nil, err
	}
	if confirm == nil || !confirm() {
		return nil, ErrNotConfirmed
	}
	if err := c.Services.Delete(ctx, id); err != nil {
		logger.Error(ctx, "service delete failed", err, zap.String("service_id", id.String()))
		return nil, fmt.Errorf("delete service: %w", err)
	}
	logger.Info(ctx, "service deleted", zap.String("service_id", id.String()), zap.String("by", actor.ID.String()))
	return c.relist(ctx), nil
}

// ListReviews lists reviews, optionally narrowed by service and author.
func (c *Console) ListReviews(ctx context.Context, actor *model.User, f repository.FeedbackFilter) ([]model.Feedback, error) {
	if err := Gate(actor); err != nil {
		return nil, err
	}
	return c.Reviews.List(ctx, f)
}

// DeleteReview removes a review once confirmed and returns the refreshed
// list for the same filter.
func (c *Console) DeleteReview(ctx context.Context, actor *model.User, id model.ID, f repository.FeedbackFilter, confirm Confirm) ([]model.Feedback, error) {
	if err := Gate(actor); err != nil {
		return nil, err
	}
	if confirm == nil || !confirm() {
		return nil, ErrNotConfirmed
	}
	if err := c.Reviews.Delete(ctx, id); err != nil {
		logger.Error(ctx, "review delete failed", err, zap.String("review_id", id.String()))
		return nil, fmt.Errorf("delete review: %w", err)
	}
	list, err := c.Reviews.List(ctx, f)
	if err != nil {
		logger.Warn(ctx, "review list refresh failed", zap.Error(err))
		return nil, nil
	}
	return list, nil
}

// Dashboard is everything the console shows on load.
type Dashboard struct {
	Services []model.Service  `json:"services"`
	Users    []model.User     `json:"users"`
	Reviews  []model.Feedback `json:"reviews"`
}

// Dashboard loads services, users and reviews concurrently. Any failure
// fails the whole load. Users come back without password hashes.
func (c *Console) Dashboard(ctx context.Context, actor *model.User, f repository.FeedbackFilter) (Dashboard, error) {
	if err := Gate(actor); err != nil {
		return Dashboard{}, err
	}
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Services, err = c.Services.AllSorted(gctx, "title")
		return err
	})
	g.Go(func() error {
		users, err := c.Users.All(gctx)
		if err != nil {
			return err
		}
		d.Users = make([]model.User, 0, len(users))
		for _, u := range users {
			d.Users = append(d.Users, u.Public())
		}
		return nil
	})
	g.Go(func() error {
		var err error
		d.Reviews, err = c.Reviews.List(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "admin dashboard load failed", err)
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}
	return d, nil
}
