package client

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"
	"time"
)

// Action names the mutation that triggered a refresh.
type Action string

const (
	ActionUpsert  Action = "upsert"
	ActionPaid    Action = "paid"
	ActionUnpaid  Action = "unpaid"
	ActionDebt    Action = "debt"
	ActionPayment Action = "payment"
	ActionRemove  Action = "remove"
)

// Event describes a committed mutation.
type Event struct {
	Action Action `json:"action"`
	Name   string `json:"name"`
}

// RefreshFunc is called after every committed mutation.
type RefreshFunc func(ctx context.Context, ev Event)

// Options tune how the service stamps and validates records.
type Options struct {
	Location      *time.Location
	DateLayout    string
	StrictAmounts bool
	Now           func() time.Time

	// Companies, when set, is the only accepted set of company names.
	Companies []string
}

// Service implements the ledger operations on top of a Store.
type Service struct {
	store *Store
	opts  Options

	mu          sync.RWMutex
	subscribers []RefreshFunc
}

// NewService creates ledger service
func NewService(store *Store, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.DateLayout == "" {
		opts.DateLayout = "2/1/2006, 15:04:05"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{store: store, opts: opts}
}

// Store exposes the underlying store for read paths.
func (s *Service) Store() *Store {
	return s.store
}

// Subscribe registers fn to be called after each committed mutation.
func (s *Service) Subscribe(fn RefreshFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Service) refresh(ctx context.Context, action Action, name string) {
	s.mu.RLock()
	subs := make([]RefreshFunc, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	ev := Event{Action: action, Name: name}
	for _, fn := range subs {
		fn(ctx, ev)
	}
}

func (s *Service) stamp() string {
	return s.opts.Now().In(s.opts.Location).Format(s.opts.DateLayout)
}

func (s *Service) checkAmount(v string) error {
	if s.opts.StrictAmounts && !IsNumeric(v) {
		return ErrInvalidAmount
	}
	return nil
}

// AddClient stores a new Unpaid client, replacing any record with the same name.
func (s *Service) AddClient(ctx context.Context, name, debt, company string) (*Client, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if err := s.checkAmount(debt); err != nil {
		return nil, err
	}
	if len(s.opts.Companies) > 0 && !slices.Contains(s.opts.Companies, company) {
		return nil, ErrUnknownCompany
	}

	c := &Client{
		Name:     name,
		Debt:     debt,
		Status:   StatusUnpaid,
		Company:  company,
		Date:     s.stamp(),
		Payments: []Payment{},
	}
	if err := s.store.Upsert(ctx, c); err != nil {
		return nil, err
	}

	s.refresh(ctx, ActionUpsert, name)
	return c, nil
}

// Get returns a client by name
func (s *Service) Get(ctx context.Context, name string) (*Client, error) {
	return s.store.Get(ctx, name)
}

// MarkPaid sets the status to Paid without touching the debt.
func (s *Service) MarkPaid(ctx context.Context, name string) (*Client, error) {
	return s.setStatus(ctx, name, StatusPaid, ActionPaid)
}

// MarkUnpaid sets the status back to Unpaid without touching the debt.
func (s *Service) MarkUnpaid(ctx context.Context, name string) (*Client, error) {
	return s.setStatus(ctx, name, StatusUnpaid, ActionUnpaid)
}

func (s *Service) setStatus(ctx context.Context, name string, status Status, action Action) (*Client, error) {
	found, err := s.store.UpdateStatus(ctx, name, status, nil)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrClientNotFound
	}

	s.refresh(ctx, action, name)
	return s.store.Get(ctx, name)
}

// EditDebt replaces the debt as entered, keeping the current status.
func (s *Service) EditDebt(ctx context.Context, name, debt string) (*Client, error) {
	if err := s.checkAmount(debt); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx *Store) error {
		current, err := tx.getForUpdate(ctx, name)
		if err != nil {
			return err
		}
		found, err := tx.UpdateStatus(ctx, name, current.Status, &debt)
		if err != nil {
			return err
		}
		if !found {
			return ErrClientNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, ActionDebt, name)
	return s.store.Get(ctx, name)
}

// RecordPayment subtracts amount from the client's debt, settles it when it
// reaches zero, and appends the payment to the history.
func (s *Service) RecordPayment(ctx context.Context, name, amount string) (*Client, error) {
	if err := s.checkAmount(amount); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(tx *Store) error {
		current, err := tx.getForUpdate(ctx, name)
		if err != nil {
			return err
		}

		parse := ParseAmount
		if !s.opts.StrictAmounts {
			parse = ParseLeadingAmount
		}
		newDebt, status := NaN, current.Status
		debt, debtErr := parse(current.Debt)
		paid, amountErr := parse(amount)
		switch {
		case debtErr == nil && amountErr == nil:
			d, st := ApplyPayment(current.Status, debt, paid)
			newDebt, status = FormatDebt(d), st
		case s.opts.StrictAmounts:
			return ErrInvalidAmount
		default:
			log.Printf("ledger_payment_nan name=%q debt=%q amount=%q", name, current.Debt, amount)
		}

		found, err := tx.UpdateStatus(ctx, name, status, &newDebt)
		if err != nil {
			return err
		}
		if !found {
			return ErrClientNotFound
		}

		now := s.opts.Now()
		return tx.AppendPayment(ctx, name, &Payment{
			Amount:    amount,
			Date:      now.In(s.opts.Location).Format(s.opts.DateLayout),
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, ActionPayment, name)
	return s.store.Get(ctx, name)
}

// Remove deletes a client. Unknown names are ignored.
func (s *Service) Remove(ctx context.Context, name string) error {
	if err := s.store.Remove(ctx, name); err != nil {
		return err
	}
	s.refresh(ctx, ActionRemove, name)
	return nil
}

// List returns all clients, or those of one company when company is set.
func (s *Service) List(ctx context.Context, company string) ([]*Client, error) {
	if company != "" {
		return Collect(s.store.ListByCompany(ctx, company))
	}
	return Collect(s.store.ListAll(ctx))
}

// Payments returns the payment history of a client.
func (s *Service) Payments(ctx context.Context, name string) ([]Payment, error) {
	if _, err := s.store.Get(ctx, name); err != nil {
		return nil, err
	}
	return s.store.ListPayments(ctx, name)
}
