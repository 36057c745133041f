package cart

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/iliyamo/lawshop/internal/model"
)

// memStore is an in-memory cart collection that counts every call.
type memStore struct {
	mu        sync.Mutex
	lines     map[model.ID]model.CartItem
	next      int
	calls     int
	failPatch bool
	failList  bool
	failDel   map[model.ID]bool
}

func newMemStore(lines ...model.CartItem) *memStore {
	s := &memStore{lines: map[model.ID]model.CartItem{}, failDel: map[model.ID]bool{}}
	for _, l := range lines {
		s.lines[l.ID] = l
		if n, _ := strconv.Atoi(l.ID.String()); n > s.next {
			s.next = n
		}
	}
	return s
}

var errStore = errors.New("store unavailable")

func (s *memStore) List(_ context.Context, owner model.ID) ([]model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failList {
		return nil, errStore
	}
	var out []model.CartItem
	for i := 1; i <= s.next; i++ {
		if l, ok := s.lines[model.ID(strconv.Itoa(i))]; ok && (owner.IsZero() || l.OwnerID == owner) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memStore) FindByService(_ context.Context, owner, serviceID model.ID) ([]model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	var out []model.CartItem
	for _, l := range s.lines {
		if l.ServiceID == serviceID && (owner.IsZero() || l.OwnerID == owner) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memStore) Create(_ context.Context, item model.CartItem) (model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.next++
	item.ID = model.ID(strconv.Itoa(s.next))
	s.lines[item.ID] = item
	return item, nil
}

func (s *memStore) UpdateQuantity(_ context.Context, id model.ID, qty int) (model.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failPatch {
		return model.CartItem{}, errStore
	}
	l, ok := s.lines[id]
	if !ok {
		return model.CartItem{}, errors.New("not found")
	}
	l.Quantity = qty
	s.lines[id] = l
	return l, nil
}

func (s *memStore) Delete(_ context.Context, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failDel[id] {
		return errStore
	}
	delete(s.lines, id)
	return nil
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type memOrders struct {
	created []model.Order
	fail    bool
	calls   int
}

func (o *memOrders) Create(_ context.Context, order model.Order) (model.Order, error) {
	o.calls++
	if o.fail {
		return model.Order{}, errStore
	}
	order.ID = model.ID(strconv.Itoa(len(o.created) + 1))
	o.created = append(o.created, order)
	return order, nil
}

type recordingNotifier struct{ orders []model.Order }

func (n *recordingNotifier) OrderPlaced(_ context.Context, o model.Order) error {
	n.orders = append(n.orders, o)
	return errors.New("broker down")
}
