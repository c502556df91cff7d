package integration

import (
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
)

var versionSuffix = regexp.MustCompile(`v\d+$`)

// FakeRecord is a record served by FakeOAI.
type FakeRecord struct {
	ID       string
	Title    string
	SetSpec  string
	Created  string
	Updated  string
	Authors  [][2]string // keyname, forenames
	Abstract string
}

// FakeOAI is an in-process stand-in for the arXiv OAI-PMH endpoint.
type FakeOAI struct {
	*httptest.Server

	mu       sync.Mutex
	records  map[string]FakeRecord
	failWith int
	requests map[string]int
}

func NewFakeOAI() *FakeOAI {
	f := &FakeOAI{
		records:  map[string]FakeRecord{},
		requests: map[string]int{},
	}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	return f
}

// Reset drops all records, failure modes and request counts.
func (f *FakeOAI) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = map[string]FakeRecord{}
	f.requests = map[string]int{}
	f.failWith = 0
}

func (f *FakeOAI) Add(r FakeRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[r.ID] = r
}

// FailWith makes every request answer with the given HTTP status.
func (f *FakeOAI) FailWith(status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failWith = status
}

// Requests returns how many GetRecord calls were made for id.
func (f *FakeOAI) Requests(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[id]
}

func (f *FakeOAI) serve(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Query().Get("identifier"), "oai:arXiv.org:")

	f.mu.Lock()
	f.requests[id]++
	failWith := f.failWith
	rec, ok := f.records[id]
	if !ok {
		// arXiv serves a versioned id from the unversioned record
		rec, ok = f.records[versionSuffix.ReplaceAllString(id, "")]
	}
	f.mu.Unlock()

	if failWith != 0 {
		http.Error(w, http.StatusText(failWith), failWith)
		return
	}

	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	if !ok {
		_, _ = fmt.Fprint(w, `<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
<error code="idDoesNotExist">Value of the identifier argument is unknown or illegal in this repository.</error>
</OAI-PMH>`)
		return
	}
	_, _ = fmt.Fprint(w, recordDocument(rec))
}

func recordDocument(r FakeRecord) string {
	var authors strings.Builder
	for _, a := range r.Authors {
		fmt.Fprintf(&authors, "<author><keyname>%s</keyname><forenames>%s</forenames></author>",
			html.EscapeString(a[0]), html.EscapeString(a[1]))
	}
	updated := ""
	if r.Updated != "" {
		updated = "<updated>" + r.Updated + "</updated>"
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/">
<GetRecord><record>
<header><identifier>oai:arXiv.org:%[1]s</identifier><datestamp>%[2]s</datestamp><setSpec>%[3]s</setSpec></header>
<metadata><arXiv xmlns="http://arxiv.org/OAI/arXiv/">
<id>%[1]s</id><created>%[2]s</created>%[4]s
<authors>%[5]s</authors>
<title>%[6]s</title><categories>%[3]s</categories><license></license>
<abstract>%[7]s</abstract>
</arXiv></metadata>
</record></GetRecord>
</OAI-PMH>`, r.ID, r.Created, r.SetSpec, updated, authors.String(), html.EscapeString(r.Title), html.EscapeString(r.Abstract))
}
