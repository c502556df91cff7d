package resolver

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// memStore is an in-memory PapersStore enforcing a unique identifier.
type memStore struct {
	mu       sync.Mutex
	papers   []store.Paper
	nextID   uint
	authorID uint
	inserts  atomic.Int32
}

func (m *memStore) FindByIdentifier(_ context.Context, identifier string) (*store.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.papers {
		if p.Identifier == identifier {
			cp := p
			return &cp, nil
		}
	}
	return nil, store.ErrPaperNotFound
}

func (m *memStore) InsertPaper(_ context.Context, paper *store.Paper) (*store.Paper, error) {
	m.inserts.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.papers {
		if p.Identifier == paper.Identifier {
			return nil, store.ErrPaperExists
		}
	}
	out := *paper
	m.nextID++
	out.ID = m.nextID
	out.Authors = make([]store.Author, len(paper.Authors))
	for i, a := range paper.Authors {
		m.authorID++
		a.ID = m.authorID
		out.Authors[i] = a
	}
	m.papers = append(m.papers, out)
	return &out, nil
}

func (m *memStore) ListPapers(context.Context) ([]store.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]store.Paper(nil), m.papers...), nil
}

func (m *memStore) SearchByAuthorName(_ context.Context, name string) ([]store.Paper, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []store.Paper
	for _, p := range m.papers {
		for _, a := range p.Authors {
			if strings.Contains(strings.ToLower(a.Keyname+" "+a.Forenames), strings.ToLower(name)) {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.papers)
}

func (m *memStore) authorCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, p := range m.papers {
		n += len(p.Authors)
	}
	return n
}

// fakeLookup serves fixed records and counts calls. When gate is set every
// call blocks until it is closed.
type fakeLookup struct {
	records map[string]*arxiv.Record
	err     error
	gate    chan struct{}
	calls   atomic.Int32
}

func (f *fakeLookup) GetRecord(ctx context.Context, id string) (*arxiv.Record, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, arxiv.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

// mockPapersStore is a testify mock of store.PapersStore.
type mockPapersStore struct {
	mock.Mock
}

func (m *mockPapersStore) FindByIdentifier(ctx context.Context, identifier string) (*store.Paper, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

func (m *mockPapersStore) InsertPaper(ctx context.Context, paper *store.Paper) (*store.Paper, error) {
	args := m.Called(ctx, paper)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Paper), args.Error(1)
}

func (m *mockPapersStore) ListPapers(ctx context.Context) ([]store.Paper, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Paper), args.Error(1)
}

func (m *mockPapersStore) SearchByAuthorName(ctx context.Context, name string) ([]store.Paper, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Paper), args.Error(1)
}

func sampleRecord() *arxiv.Record {
	return &arxiv.Record{
		Identifier: "oai:arXiv.org:2402.10949",
		Datestamp:  "2024-02-19",
		SetSpec:    "cs",
		Created:    "2024-02-16",
		Authors: []arxiv.Author{
			{Keyname: "Smith", Forenames: "John"},
			{Keyname: "Doe", Forenames: "Jane"},
		},
		Title:      "Caching",
		Categories: "cs.DB",
		License:    "http://creativecommons.org/licenses/by/4.0/",
		Abstract:   "We study caches.",
	}
}
