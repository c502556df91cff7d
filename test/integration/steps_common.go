package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/cucumber/godog"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	server       *ServerInstance
	response     *http.Response
	responseBody []byte
	statuses     []int
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{tc: tc}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, s.tc.Reset()
	})
	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		if s.server != nil {
			s.server.Stop()
			s.server = nil
		}
		return ctx, nil
	})

	// Background steps
	sc.Step(`^an arxiv-cache server is running$`, s.anArxivCacheServerIsRunning)
	sc.Step(`^arXiv has the paper "([^"]*)" titled "([^"]*)" by:$`, s.arXivHasThePaper)
	sc.Step(`^arXiv answers every request with status (\d+)$`, s.arXivAnswersWithStatus)

	// Request steps
	sc.Step(`^I request the metadata for "([^"]*)"$`, s.iRequestTheMetadataFor)
	sc.Step(`^I request the metadata for "([^"]*)" (\d+) times concurrently$`, s.iRequestTheMetadataConcurrently)
	sc.Step(`^I list the papers$`, s.iListThePapers)
	sc.Step(`^I search papers by author "([^"]*)"$`, s.iSearchPapersByAuthor)
	sc.Step(`^I search papers without an author name$`, s.iSearchPapersWithoutAnAuthorName)

	// Response steps
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)
	sc.Step(`^every response status should be (\d+)$`, s.everyResponseStatusShouldBe)
	sc.Step(`^the response error code should be "([^"]*)"$`, s.theResponseErrorCodeShouldBe)
	sc.Step(`^the response should be a paper with identifier "([^"]*)"$`, s.theResponseShouldBeAPaperWithIdentifier)
	sc.Step(`^the paper should have (\d+) authors?$`, s.thePaperShouldHaveAuthors)
	sc.Step(`^the paper should have no updated date$`, s.thePaperShouldHaveNoUpdatedDate)
	sc.Step(`^the response should list (\d+) papers?$`, s.theResponseShouldListPapers)
	sc.Step(`^the response should list papers "([^"]*)"$`, s.theResponseShouldListPapersInOrder)

	// Upstream and database steps
	sc.Step(`^arXiv should have been asked for "([^"]*)" (\d+) times?$`, s.arXivShouldHaveBeenAskedFor)
	sc.Step(`^the database should contain (\d+) papers? and (\d+) authors?$`, s.theDatabaseShouldContain)
}

// Background steps

func (s *StepsContext) anArxivCacheServerIsRunning() error {
	instance, err := StartServer(s.tc)
	if err != nil {
		return err
	}
	s.server = instance
	return nil
}

func (s *StepsContext) arXivHasThePaper(id, title string, table *godog.Table) error {
	rec := FakeRecord{
		ID:       id,
		Title:    title,
		SetSpec:  "cs",
		Created:  "2024-02-16",
		Abstract: "Abstract of " + title,
	}
	for i, row := range table.Rows {
		if i == 0 {
			continue // header
		}
		if len(row.Cells) != 2 {
			return fmt.Errorf("author rows need keyname and forenames")
		}
		rec.Authors = append(rec.Authors, [2]string{row.Cells[0].Value, row.Cells[1].Value})
	}
	s.tc.OAI.Add(rec)
	return nil
}

func (s *StepsContext) arXivAnswersWithStatus(status int) error {
	s.tc.OAI.FailWith(status)
	return nil
}

// Request steps

func (s *StepsContext) do(method, path string) error {
	req, err := http.NewRequest(method, s.server.ServerURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	s.response = resp
	s.responseBody = body
	return nil
}

func (s *StepsContext) iRequestTheMetadataFor(id string) error {
	return s.do(http.MethodPost, "/arxiv/metadata/"+id)
}

func (s *StepsContext) iRequestTheMetadataConcurrently(id string, n int) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	s.statuses = nil
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Post(s.server.ServerURL+"/arxiv/metadata/"+id, "application/json", nil)
			if err != nil {
				errs <- err
				return
			}
			_ = resp.Body.Close()
			mu.Lock()
			s.statuses = append(s.statuses, resp.StatusCode)
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(errs)
	if err, ok := <-errs; ok {
		return err
	}
	return nil
}

func (s *StepsContext) iListThePapers() error {
	return s.do(http.MethodGet, "/papers/")
}

func (s *StepsContext) iSearchPapersByAuthor(name string) error {
	return s.do(http.MethodGet, "/papers/search/?author_name="+url.QueryEscape(name))
}

func (s *StepsContext) iSearchPapersWithoutAnAuthorName() error {
	return s.do(http.MethodGet, "/papers/search/")
}

// Response steps

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) everyResponseStatusShouldBe(status int) error {
	if len(s.statuses) == 0 {
		return fmt.Errorf("no responses received")
	}
	for _, got := range s.statuses {
		if got != status {
			return fmt.Errorf("expected every status to be %d, got %v", status, s.statuses)
		}
	}
	return nil
}

func (s *StepsContext) theResponseErrorCodeShouldBe(code string) error {
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(s.responseBody, &body); err != nil {
		return fmt.Errorf("failed to parse error body: %w", err)
	}
	if body.Error.Code != code {
		return fmt.Errorf("expected error code %q, got %q", code, body.Error.Code)
	}
	return nil
}

type paperJSON struct {
	ID         uint                     `json:"id"`
	Identifier string                   `json:"identifier"`
	Updated    *string                  `json:"updated"`
	Authors    []map[string]interface{} `json:"authors"`
}

func (s *StepsContext) paper() (*paperJSON, error) {
	var p paperJSON
	if err := json.Unmarshal(s.responseBody, &p); err != nil {
		return nil, fmt.Errorf("failed to parse paper: %w", err)
	}
	return &p, nil
}

func (s *StepsContext) papers() ([]paperJSON, error) {
	var ps []paperJSON
	if err := json.Unmarshal(s.responseBody, &ps); err != nil {
		return nil, fmt.Errorf("failed to parse paper list: %w", err)
	}
	return ps, nil
}

func (s *StepsContext) theResponseShouldBeAPaperWithIdentifier(identifier string) error {
	p, err := s.paper()
	if err != nil {
		return err
	}
	if p.Identifier != identifier {
		return fmt.Errorf("expected identifier %q, got %q", identifier, p.Identifier)
	}
	return nil
}

func (s *StepsContext) thePaperShouldHaveAuthors(n int) error {
	p, err := s.paper()
	if err != nil {
		return err
	}
	if len(p.Authors) != n {
		return fmt.Errorf("expected %d authors, got %d", n, len(p.Authors))
	}
	return nil
}

func (s *StepsContext) thePaperShouldHaveNoUpdatedDate() error {
	p, err := s.paper()
	if err != nil {
		return err
	}
	if p.Updated != nil {
		return fmt.Errorf("expected no updated date, got %q", *p.Updated)
	}
	return nil
}

func (s *StepsContext) theResponseShouldListPapers(n int) error {
	ps, err := s.papers()
	if err != nil {
		return err
	}
	if len(ps) != n {
		return fmt.Errorf("expected %d papers, got %d: %s", n, len(ps), string(s.responseBody))
	}
	return nil
}

func (s *StepsContext) theResponseShouldListPapersInOrder(list string) error {
	ps, err := s.papers()
	if err != nil {
		return err
	}
	var got []string
	for _, p := range ps {
		got = append(got, p.Identifier)
	}
	want := strings.Split(list, ",")
	for i := range want {
		want[i] = strings.TrimSpace(want[i])
	}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		return fmt.Errorf("expected papers %v, got %v", want, got)
	}
	return nil
}

// Upstream and database steps

func (s *StepsContext) arXivShouldHaveBeenAskedFor(id string, n int) error {
	if got := s.tc.OAI.Requests(id); got != n {
		return fmt.Errorf("expected %d upstream requests for %s, got %d", n, id, got)
	}
	return nil
}

func (s *StepsContext) theDatabaseShouldContain(papers, authors int) error {
	var paperCount, authorCount int64
	if err := s.tc.DB.Table("papers").Count(&paperCount).Error; err != nil {
		return err
	}
	if err := s.tc.DB.Table("authors").Count(&authorCount).Error; err != nil {
		return err
	}
	if int(paperCount) != papers || int(authorCount) != authors {
		return fmt.Errorf("expected %d papers and %d authors, got %d and %d", papers, authors, paperCount, authorCount)
	}
	return nil
}
