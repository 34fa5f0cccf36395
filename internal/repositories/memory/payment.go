package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"payout/internal/models"
	"payout/internal/repositories"
)

type paymentState struct {
	nextID uint
	rows   map[uint]models.Payment
}

func (s *paymentState) clone() paymentState {
	rows := make(map[uint]models.Payment, len(s.rows))
	for id, p := range s.rows {
		rows[id] = p
	}
	return paymentState{nextID: s.nextID, rows: rows}
}

// PaymentRepository keeps payments in a map guarded by a single mutex.
// A transaction holds the mutex for its whole duration and restores a
// snapshot when its function fails.
type PaymentRepository struct {
	mu    *sync.Mutex
	state *paymentState
	inTx  bool
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		mu:    &sync.Mutex{},
		state: &paymentState{rows: make(map[uint]models.Payment)},
	}
}

func (r *PaymentRepository) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.mu.Lock()
	return r.mu.Unlock
}

func (r *PaymentRepository) Create(_ context.Context, payment *models.Payment) error {
	defer r.lock()()

	now := time.Now().UTC()
	r.state.nextID++
	payment.ID = r.state.nextID
	if payment.Status == "" {
		payment.Status = models.PaymentStatusAccepted
	}
	payment.CreatedAt = now
	payment.UpdatedAt = now
	r.state.rows[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) Save(_ context.Context, payment *models.Payment) error {
	defer r.lock()()

	if payment.ID == 0 {
		r.state.nextID++
		payment.ID = r.state.nextID
		payment.CreatedAt = time.Now().UTC()
	} else if payment.ID > r.state.nextID {
		r.state.nextID = payment.ID
	}
	payment.UpdatedAt = time.Now().UTC()
	r.state.rows[payment.ID] = *payment
	return nil
}

func (r *PaymentRepository) FindByID(_ context.Context, id uint) (*models.Payment, error) {
	defer r.lock()()

	p, ok := r.state.rows[id]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *PaymentRepository) FindByStoreAndStatus(_ context.Context, storeID uint, status models.PaymentStatus) ([]models.Payment, error) {
	defer r.lock()()

	return r.filter(storeID, status), nil
}

func (r *PaymentRepository) ListByStore(_ context.Context, storeID uint, status models.PaymentStatus, limit, offset int) ([]models.Payment, int64, error) {
	defer r.lock()()

	all := r.filter(storeID, status)
	total := int64(len(all))
	if offset >= len(all) {
		return []models.Payment{}, total, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], total, nil
}

func (r *PaymentRepository) filter(storeID uint, status models.PaymentStatus) []models.Payment {
	payments := make([]models.Payment, 0)
	for _, p := range r.state.rows {
		if p.StoreID != storeID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		payments = append(payments, p)
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments
}

func (r *PaymentRepository) TransitionStatus(_ context.Context, id uint, from, to models.PaymentStatus) (int64, error) {
	defer r.lock()()

	p, ok := r.state.rows[id]
	if !ok || p.Status != from {
		return 0, nil
	}
	p.Status = to
	p.UpdatedAt = time.Now().UTC()
	r.state.rows[id] = p
	return 1, nil
}

func (r *PaymentRepository) MarkPaid(_ context.Context, id uint, reference string, paidAt time.Time) (int64, error) {
	defer r.lock()()

	p, ok := r.state.rows[id]
	if !ok || p.Status != models.PaymentStatusCompleted {
		return 0, nil
	}
	p.Status = models.PaymentStatusPaid
	p.SettlementRef = reference
	p.PaidAt = &paidAt
	p.UpdatedAt = time.Now().UTC()
	r.state.rows[id] = p
	return 1, nil
}

func (r *PaymentRepository) ExecuteInTransaction(_ context.Context, fn func(repositories.PaymentRepository) error) error {
	if r.inTx {
		return fn(r)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := r.state.clone()
	// A panic rolls back and propagates, as gorm's Transaction does.
	defer func() {
		if p := recover(); p != nil {
			*r.state = snapshot
			panic(p)
		}
	}()

	tx := &PaymentRepository{mu: r.mu, state: r.state, inTx: true}
	if err := fn(tx); err != nil {
		*r.state = snapshot
		return err
	}
	return nil
}
