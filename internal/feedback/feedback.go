// Package feedback collects reviews from customers who bought a service.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
)

const (
	MinCommentLength = 60
	MinRating        = 1
	MaxRating        = 5
)

var (
	ErrSignInRequired = errors.New("Sign in or register to submit a review.")
	ErrAdministrator  = errors.New("Administrators are not allowed to submit reviews.")
	ErrNoPurchases    = errors.New("Purchase at least one service before leaving a review.")
)

// Field messages.
const (
	MsgSelectService   = "Select a service."
	MsgNotPurchased    = "You can review only services you purchased."
	MsgRatingRange     = "Use a rating between 1 and 5."
	MsgCommentTooShort = "Write at least 60 characters."
)

// ValidationError maps form fields (serviceId, rating, comment) to messages.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("review rejected: %d invalid field(s)", len(e.Fields))
}

type OrderLister interface {
	ListByUser(ctx context.Context, userID model.ID) ([]model.Order, error)
}

type ReviewStore interface {
	List(ctx context.Context, f repository.FeedbackFilter) ([]model.Feedback, error)
	Create(ctx context.Context, fb model.Feedback) (model.Feedback, error)
}

// Input is a submitted review.
type Input struct {
	ServiceID model.ID `json:"serviceId"`
	Rating    float64  `json:"rating"`
	Comment   string   `json:"comment"`
}

type Service struct {
	Orders  OrderLister
	Reviews ReviewStore
	Now     func() time.Time
}

func NewService(orders OrderLister, reviews ReviewStore) *Service {
	return &Service{Orders: orders, Reviews: reviews, Now: time.Now}
}

// PurchasedServices returns the set of service ids found in the user's
// orders.
func (s *Service) PurchasedServices(ctx context.Context, userID model.ID) (map[model.ID]bool, error) {
	orders, err := s.Orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	ids := map[model.ID]bool{}
	for _, o := range orders {
		for _, it := range o.Items {
			if !it.ServiceID.IsZero() {
				ids[it.ServiceID] = true
			}
		}
	}
	return ids, nil
}

// Eligibility tells whether user may review anything and returns the
// purchased service ids when they may.
func (s *Service) Eligibility(ctx context.Context, user *model.User) (map[model.ID]bool, error) {
	if user == nil || user.ID.IsZero() {
		return nil, ErrSignInRequired
	}
	if user.IsAdmin() {
		return nil, ErrAdministrator
	}
	ids, err := s.PurchasedServices(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrNoPurchases
	}
	return ids, nil
}

// Validate checks one review against the purchased set.
func Validate(in Input, purchased map[model.ID]bool) error {
	fields := map[string]string{}
	switch {
	case in.ServiceID.IsZero():
		fields["serviceId"] = MsgSelectService
	case !purchased[in.ServiceID]:
		fields["serviceId"] = MsgNotPurchased
	}
	if in.Rating < MinRating || in.Rating > MaxRating || in.Rating != float64(int(in.Rating)) {
		fields["rating"] = MsgRatingRange
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Comment)) < MinCommentLength {
		fields["comment"] = MsgCommentTooShort
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Submit stores a pending review signed with the author's display name.
func (s *Service) Submit(ctx context.Context, user *model.User, in Input) (model.Feedback, error) {
	purchased, err := s.Eligibility(ctx, user)
	if err != nil {
		return model.Feedback{}, err
	}
	if err := Validate(in, purchased); err != nil {
		return model.Feedback{}, err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	fb, err := s.Reviews.Create(ctx, model.Feedback{
		ServiceID:        in.ServiceID,
		UserID:           user.ID,
		Rating:           int(in.Rating),
		Comment:          strings.TrimSpace(in.Comment),
		CreatedAt:        now().UTC(),
		ModerationStatus: model.ModerationPending,
		Nickname:         user.DisplayName(),
	})
	if err != nil {
		logger.Error(ctx, "review create failed", err, zap.String("user_id", user.ID.String()))
		return model.Feedback{}, fmt.Errorf("submit review: %w", err)
	}
	return fb, nil
}

// ForService lists the reviews of one service, newest first.
func (s *Service) ForService(ctx context.Context, serviceID model.ID) ([]model.Feedback, error) {
	return s.Reviews.List(ctx, repository.FeedbackFilter{ServiceID: serviceID})
}
