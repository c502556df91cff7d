package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

type stubResolver struct {
	mu       sync.Mutex
	inFlight int32
	maxSeen  int32
	fail     map[string]error
}

func (s *stubResolver) Resolve(ctx context.Context, id string) (*store.Paper, error) {
	n := atomic.AddInt32(&s.inFlight, 1)
	defer atomic.AddInt32(&s.inFlight, -1)

	s.mu.Lock()
	if n > s.maxSeen {
		s.maxSeen = n
	}
	s.mu.Unlock()

	time.Sleep(10 * time.Millisecond)
	if err := s.fail[id]; err != nil {
		return nil, err
	}
	return &store.Paper{Identifier: "oai:arXiv.org:" + id, Title: "T " + id}, nil
}

func TestReadIDs(t *testing.T) {
	input := `
# prefetch list
2101.00001
  hep-th/9901001  

2101.00001
# 2101.99999
`
	ids, err := readIDs(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{"2101.00001", "hep-th/9901001"}, ids)
}

func TestReadIDs_Empty(t *testing.T) {
	ids, err := readIDs(strings.NewReader("\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestResolveAll_KeepsOrderAndErrors(t *testing.T) {
	boom := errors.New("upstream down")
	r := &stubResolver{fail: map[string]error{"2101.00002": boom}}
	ids := []string{"2101.00001", "2101.00002", "2101.00003", "2101.00004", "2101.00005"}

	results := resolveAll(context.Background(), r, ids, 2)

	require.Len(t, results, len(ids))
	for i, res := range results {
		assert.Equal(t, ids[i], res.ID)
	}
	assert.ErrorIs(t, results[1].Err, boom)
	assert.Nil(t, results[1].Paper)
	require.NoError(t, results[4].Err)
	assert.Equal(t, "oai:arXiv.org:2101.00005", results[4].Paper.Identifier)
	assert.LessOrEqual(t, r.maxSeen, int32(2))
}

func TestResolveAll_ZeroConcurrency(t *testing.T) {
	r := &stubResolver{}
	results := resolveAll(context.Background(), r, []string{"2101.00001", "2101.00002"}, 0)
	require.Len(t, results, 2)
	assert.Equal(t, int32(1), r.maxSeen)
}

func TestPrintPapers(t *testing.T) {
	papers := []store.Paper{{
		ID:         7,
		Identifier: "oai:arXiv.org:2101.00001",
		Title:      "A Title",
		Authors: []store.Author{
			{ID: 1, Keyname: "Smith", Forenames: "John"},
			{ID: 2, Keyname: "Doe"},
		},
	}}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printPapers(&buf, "text", papers))
		out := buf.String()
		assert.Contains(t, out, "IDENTIFIER")
		assert.Contains(t, out, "oai:arXiv.org:2101.00001")
		assert.Contains(t, out, "Smith John; Doe")
	})

	t.Run("empty json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printPapers(&buf, "json", nil))
		assert.Equal(t, "[]\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printPapers(&buf, "json", papers))
		var decoded []map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "oai:arXiv.org:2101.00001", decoded[0]["identifier"])
		assert.Len(t, decoded[0]["authors"], 2)
		assert.Nil(t, decoded[0]["updated"])
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
