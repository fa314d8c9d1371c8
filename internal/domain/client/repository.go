package client

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists client records keyed by name.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an open, migrated database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// WithTx runs fn with a store bound to a single transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Upsert inserts the client or overwrites the record with the same name,
// payment history included. Field values are stored as given.
func (s *Store) Upsert(ctx context.Context, c *Client) error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return s.WithTx(ctx, func(tx *Store) error {
		err := tx.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"debt", "status", "company", "date"}),
		}).Omit(clause.Associations).Create(c).Error
		if err != nil {
			return fmt.Errorf("upsert client %q: %w", c.Name, err)
		}

		if err := tx.db.Where("client_name = ?", c.Name).Delete(&Payment{}).Error; err != nil {
			return fmt.Errorf("reset payments of %q: %w", c.Name, err)
		}
		for i := range c.Payments {
			c.Payments[i].ClientName = c.Name
			if err := tx.db.Create(&c.Payments[i]).Error; err != nil {
				return fmt.Errorf("store payment of %q: %w", c.Name, err)
			}
		}
		return nil
	})
}

// Get returns the record with its payments in chronological order.
func (s *Store) Get(ctx context.Context, name string) (*Client, error) {
	var c Client
	err := s.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("created_at, id") }).
		Where("name = ?", name).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// getForUpdate reads the record and holds its row lock until the transaction ends.
// Payments are not loaded.
func (s *Store) getForUpdate(ctx context.Context, name string) (*Client, error) {
	var c Client
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateStatus reads the record, overwrites status and, when debt is non-nil,
// the debt, and writes it back. A missing name is a no-op reported as false.
func (s *Store) UpdateStatus(ctx context.Context, name string, status Status, debt *string) (bool, error) {
	if !status.Valid() {
		return false, ErrInvalidStatus
	}

	found := false
	err := s.WithTx(ctx, func(tx *Store) error {
		var c Client
		err := tx.db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("name = ?", name).First(&c).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		updates := map[string]any{"status": status}
		if debt != nil {
			updates["debt"] = *debt
		}
		return tx.db.Model(&Client{}).Where("name = ?", name).Updates(updates).Error
	})
	if err != nil {
		return false, fmt.Errorf("update client %q: %w", name, err)
	}
	return found, nil
}

// Remove deletes the record and its payments. Removing an unknown name is not an error.
func (s *Store) Remove(ctx context.Context, name string) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if err := tx.db.Where("client_name = ?", name).Delete(&Payment{}).Error; err != nil {
			return fmt.Errorf("remove payments of %q: %w", name, err)
		}
		if err := tx.db.Where("name = ?", name).Delete(&Client{}).Error; err != nil {
			return fmt.Errorf("remove client %q: %w", name, err)
		}
		return nil
	})
}

// ListAll yields every record in primary key order. Payments are not loaded.
func (s *Store) ListAll(ctx context.Context) iter.Seq2[*Client, error] {
	return scanClients(s.db.WithContext(ctx).Model(&Client{}).Order("name"))
}

// ListByCompany yields the records of one company through the company index.
func (s *Store) ListByCompany(ctx context.Context, company string) iter.Seq2[*Client, error] {
	return scanClients(s.db.WithContext(ctx).Model(&Client{}).Where("company = ?", company).Order("company, name"))
}

// AppendPayment adds one entry to the client's payment history.
func (s *Store) AppendPayment(ctx context.Context, name string, p *Payment) error {
	p.ClientName = name
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		if isForeignKeyViolation(err) {
			return ErrClientNotFound
		}
		return fmt.Errorf("append payment to %q: %w", name, err)
	}
	return nil
}

// isForeignKeyViolation reports a Postgres 23503 error; SQLite does not
// enforce the constraint by default.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// ListPayments returns the payment history of one client, oldest first.
func (s *Store) ListPayments(ctx context.Context, name string) ([]Payment, error) {
	var payments []Payment
	err := s.db.WithContext(ctx).Where("client_name = ?", name).Order("created_at, id").Find(&payments).Error
	return payments, err
}

// ListAllPayments returns every recorded payment, oldest first.
func (s *Store) ListAllPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := s.db.WithContext(ctx).Order("created_at, id").Find(&payments).Error
	return payments, err
}

// PruneOrphanPayments deletes payments whose client no longer exists.
func (s *Store) PruneOrphanPayments(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("client_name NOT IN (?)", s.db.Model(&Client{}).Select("name")).
		Delete(&Payment{})
	return res.RowsAffected, res.Error
}

func scanClients(q *gorm.DB) iter.Seq2[*Client, error] {
	return func(yield func(*Client, error) bool) {
		rows, err := q.Rows()
		if err != nil {
			yield(nil, err)
			return
		}
		defer rows.Close()

		for rows.Next() {
			var c Client
			if err := q.ScanRows(rows, &c); err != nil {
				yield(nil, err)
				return
			}
			if !yield(&c, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, err)
		}
	}
}

// Collect drains a sequence, stopping at the first error.
func Collect(seq iter.Seq2[*Client, error]) ([]*Client, error) {
	var out []*Client
	for c, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
