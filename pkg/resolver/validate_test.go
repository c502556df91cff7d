package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
)

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2402.10949", "2402.10949", false},
		{" 2402.10949v2\n", "2402.10949v2", false},
		{"0704.0001", "0704.0001", false},
		{"hep-th/9901001", "hep-th/9901001", false},
		{"math.GT/0309136v1", "math.GT/0309136v1", false},
		{"", "", true},
		{"2402.1094x", "", true},
		{"../../etc/passwd", "", true},
		{"hep-th/99", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeID(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *arxiv.Record)
		valid  bool
	}{
		{"complete", func(r *arxiv.Record) {}, true},
		{"no dates", func(r *arxiv.Record) { r.Datestamp, r.Created, r.Updated = "", "", "" }, true},
		{"no authors", func(r *arxiv.Record) { r.Authors = nil }, true},
		{"missing title", func(r *arxiv.Record) { r.Title = "" }, false},
		{"missing setSpec", func(r *arxiv.Record) { r.SetSpec = "" }, false},
		{"missing identifier", func(r *arxiv.Record) { r.Identifier = "" }, false},
		{"author without keyname", func(r *arxiv.Record) { r.Authors[1].Keyname = "" }, false},
		{"bad created date", func(r *arxiv.Record) { r.Created = "16/02/2024" }, false},
		{"bad updated date", func(r *arxiv.Record) { r.Updated = "2024-02-30" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := sampleRecord()
			tt.mutate(rec)
			err := ValidateRecord(rec)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}

	assert.ErrorIs(t, ValidateRecord(nil), ErrValidation)
}

func TestToPaper(t *testing.T) {
	rec := sampleRecord()
	rec.Updated = "2024-03-01"
	rec.Authors = append(rec.Authors, arxiv.Author{Keyname: "Smith", Forenames: "John"})

	paper, err := ToPaper(rec)
	require.NoError(t, err)

	assert.Zero(t, paper.ID)
	require.NotNil(t, paper.Updated)
	assert.Equal(t, "2024-03-01", paper.Updated.Format(arxiv.DateLayout))
	assert.Len(t, paper.Authors, 3)
	for _, a := range paper.Authors {
		assert.Zero(t, a.ID)
	}

	rec.Datestamp = "yesterday"
	_, err = ToPaper(rec)
	assert.ErrorIs(t, err, ErrValidation)
}
