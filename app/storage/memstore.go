// Package storage provides an in-memory implementation of the ledger store
// with copy-on-commit transactions. It backs the engine's unit tests and
// mirrors the semantics the Postgres store provides in production: reads
// return detached copies, and a transaction either lands in full or leaves
// no trace.
package storage

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/ledger"
	"github.com/mshamiyanice-cmyk/BYOSE.Money.Tracker/app/models"
)

type state struct {
	inflows    map[string]models.Inflow
	outflows   map[string]models.Outflow
	overdrafts map[string]models.Overdraft
}

func newState() state {
	return state{
		inflows:    make(map[string]models.Inflow),
		outflows:   make(map[string]models.Outflow),
		overdrafts: make(map[string]models.Overdraft),
	}
}

func (s state) clone() state {
	c := newState()
	for id, v := range s.inflows {
		c.inflows[id] = v
	}
	for id, v := range s.outflows {
		c.outflows[id] = v
	}
	for id, v := range s.overdrafts {
		c.overdrafts[id] = v
	}
	return c
}

// MemStore is a mutex-guarded in-memory ledger store.
type MemStore struct {
	mu sync.RWMutex
	s  state
}

func NewMemStore() *MemStore {
	return &MemStore{s: newState()}
}

// Transact clones the current state, runs fn against the clone, and swaps
// it in only when fn succeeds. Single-writer, so transactions serialize.
func (m *MemStore) Transact(fn func(tx ledger.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := m.s.clone()
	if err := fn(&memTx{s: &staged}); err != nil {
		return err
	}
	m.s = staged
	return nil
}

func (m *MemStore) GetInflow(id string) (*models.Inflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if in, ok := m.s.inflows[id]; ok {
		return &in, nil
	}
	return nil, ledger.ErrNotFound
}

func (m *MemStore) GetOutflow(id string) (*models.Outflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if out, ok := m.s.outflows[id]; ok {
		return &out, nil
	}
	return nil, ledger.ErrNotFound
}

func (m *MemStore) GetOverdraft(id string) (*models.Overdraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if od, ok := m.s.overdrafts[id]; ok {
		return &od, nil
	}
	return nil, ledger.ErrNotFound
}

func (m *MemStore) ListInflows() ([]*models.Inflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*models.Inflow, 0, len(m.s.inflows))
	for id := range m.s.inflows {
		in := m.s.inflows[id]
		list = append(list, &in)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MemStore) ListOutflows() ([]*models.Outflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*models.Outflow, 0, len(m.s.outflows))
	for id := range m.s.outflows {
		out := m.s.outflows[id]
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MemStore) ListOverdrafts() ([]*models.Overdraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*models.Overdraft, 0, len(m.s.overdrafts))
	for id := range m.s.overdrafts {
		od := m.s.overdrafts[id]
		list = append(list, &od)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Date != list[j].Date {
			return list[i].Date > list[j].Date
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

func (m *MemStore) OutflowsByInflow(inflowID string) ([]*models.Outflow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return outflowsByInflow(&m.s, inflowID), nil
}

func outflowsByInflow(s *state, inflowID string) []*models.Outflow {
	var list []*models.Outflow
	for id := range s.outflows {
		if s.outflows[id].InflowID != inflowID {
			continue
		}
		out := s.outflows[id]
		list = append(list, &out)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// memTx mutates the staged clone. The parent holds the lock for the whole
// transaction, so no further synchronization is needed here.
type memTx struct {
	s *state
}

func (t *memTx) GetInflow(id string) (*models.Inflow, error) {
	if in, ok := t.s.inflows[id]; ok {
		return &in, nil
	}
	return nil, ledger.ErrNotFound
}

func (t *memTx) SetInflow(in *models.Inflow) error {
	t.s.inflows[in.ID] = *in
	return nil
}

func (t *memTx) UpdateInflowBalance(id string, balance decimal.Decimal) error {
	in, ok := t.s.inflows[id]
	if !ok {
		return ledger.ErrNotFound
	}
	in.RemainingBalance = balance
	t.s.inflows[id] = in
	return nil
}

func (t *memTx) DeleteInflow(id string) error {
	delete(t.s.inflows, id)
	return nil
}

func (t *memTx) GetOutflow(id string) (*models.Outflow, error) {
	if out, ok := t.s.outflows[id]; ok {
		return &out, nil
	}
	return nil, ledger.ErrNotFound
}

func (t *memTx) SetOutflow(out *models.Outflow) error {
	t.s.outflows[out.ID] = *out
	return nil
}

func (t *memTx) DeleteOutflow(id string) error {
	delete(t.s.outflows, id)
	return nil
}

func (t *memTx) OutflowsByInflow(inflowID string) ([]*models.Outflow, error) {
	return outflowsByInflow(t.s, inflowID), nil
}

func (t *memTx) CountOutflowsByInflow(inflowID string) (int, error) {
	return len(outflowsByInflow(t.s, inflowID)), nil
}

func (t *memTx) GetOverdraft(id string) (*models.Overdraft, error) {
	if od, ok := t.s.overdrafts[id]; ok {
		return &od, nil
	}
	return nil, ledger.ErrNotFound
}

func (t *memTx) SetOverdraft(od *models.Overdraft) error {
	t.s.overdrafts[od.ID] = *od
	return nil
}

func (t *memTx) DeleteOverdraft(id string) error {
	delete(t.s.overdrafts, id)
	return nil
}
