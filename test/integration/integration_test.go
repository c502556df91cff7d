package integration

import (
	"context"
	"os"
	"testing"

	"github.com/cucumber/godog"
)

// TestFeatures runs features/*.feature against a postgres container and a
// fake arXiv endpoint. GODOG_TAGS narrows the run, e.g. GODOG_TAGS=~@slow.
func TestFeatures(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") == "" {
		t.Skip("set INTEGRATION_TEST=1 to run the arxiv-cache feature suite")
	}

	ctx := context.Background()
	tc, err := NewTestContext(ctx)
	if err != nil {
		t.Fatalf("setting up postgres and fake arXiv: %v", err)
	}
	t.Cleanup(func() { tc.Close(ctx) })

	opts := &godog.Options{
		Format:   "pretty",
		Paths:    []string{"features"},
		Tags:     os.Getenv("GODOG_TAGS"),
		Strict:   true,
		TestingT: t,
		// one database and one fake upstream are shared by every scenario
		Concurrency: 1,
	}

	status := godog.TestSuite{
		Name: "arxiv-cache",
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			NewStepsContext(tc).RegisterSteps(sc)
		},
		Options: opts,
	}.Run()
	if status != 0 {
		t.Fatalf("feature suite failed with status %d", status)
	}
}
