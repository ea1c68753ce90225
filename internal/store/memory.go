package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rsoni/hireview/internal/interview"
	"github.com/rsoni/hireview/internal/report"
)

// MemoryRepo is an in-memory interview.SessionRepo with the same document
// semantics as the SQLite store: sessions are stored serialized, so callers
// never share mutable state with the repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string][]byte
	reports  map[string][]byte
	order    []string
}

// NewMemory creates an empty MemoryRepo.
func NewMemory() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string][]byte),
		reports:  make(map[string][]byte),
	}
}

func (m *MemoryRepo) Create(_ context.Context, s *interview.Session) error {
	data, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; ok {
		return interview.ErrExists
	}
	m.sessions[s.ID] = data
	m.order = append(m.order, s.ID)
	return nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*interview.Session, error) {
	m.mu.RLock()
	data, ok := m.sessions[id]
	reportData := m.reports[id]
	m.mu.RUnlock()
	if !ok {
		return nil, interview.ErrNotFound
	}
	return m.decode(data, reportData)
}

func (m *MemoryRepo) Save(_ context.Context, s *interview.Session) error {
	data, err := encodeSession(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[s.ID]; !ok {
		return interview.ErrNotFound
	}
	m.sessions[s.ID] = data
	return nil
}

func (m *MemoryRepo) SaveReportIfAbsent(_ context.Context, id string, rep *report.Report) (*report.Report, bool, error) {
	data, err := json.Marshal(rep)
	if err != nil {
		return nil, false, fmt.Errorf("encode report: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return nil, false, interview.ErrNotFound
	}
	if stored, ok := m.reports[id]; ok {
		var canonical report.Report
		if err := json.Unmarshal(stored, &canonical); err != nil {
			return nil, false, fmt.Errorf("decode stored report: %w", err)
		}
		return &canonical, false, nil
	}
	m.reports[id] = data
	return rep, true, nil
}

func (m *MemoryRepo) List(_ context.Context) ([]*interview.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sessions := make([]*interview.Session, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		id := m.order[i]
		s, err := m.decode(m.sessions[id], m.reports[id])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (m *MemoryRepo) decode(data, reportData []byte) (*interview.Session, error) {
	var s interview.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if reportData != nil {
		var r report.Report
		if err := json.Unmarshal(reportData, &r); err != nil {
			return nil, fmt.Errorf("decode report: %w", err)
		}
		s.Report = &r
	}
	return &s, nil
}
