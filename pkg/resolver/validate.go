package resolver

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/arxiv"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

var (
	newStyleID = regexp.MustCompile(`^\d{4}\.\d{4,5}(v\d+)?$`)
	oldStyleID = regexp.MustCompile(`^[a-z]+(-[a-z]+)*(\.[A-Za-z]{2})?/\d{7}(v\d+)?$`)
)

// NormalizeID trims an external id and checks it is a well-formed arXiv id.
func NormalizeID(externalID string) (string, error) {
	id := strings.TrimSpace(externalID)
	err := validation.Validate(id,
		validation.Required,
		validation.Length(1, 64),
		validation.By(func(value interface{}) error {
			s, _ := value.(string)
			if !newStyleID.MatchString(s) && !oldStyleID.MatchString(s) {
				return validation.NewError("validation_arxiv_id", "must be a new-style (YYMM.NNNNN) or old-style (archive/YYMMNNN) arXiv id")
			}
			return nil
		}),
	)
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidIdentifier, externalID, err)
	}
	return id, nil
}

// ValidateRecord checks that an upstream record can be stored.
func ValidateRecord(r *arxiv.Record) error {
	if r == nil {
		return fmt.Errorf("%w: empty record", ErrValidation)
	}
	err := validation.ValidateStruct(r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.SetSpec, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Datestamp, validation.Date(arxiv.DateLayout)),
		validation.Field(&r.Created, validation.Date(arxiv.DateLayout)),
		validation.Field(&r.Updated, validation.Date(arxiv.DateLayout)),
		validation.Field(&r.Authors, validation.Each(validation.By(validateAuthor))),
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrValidation, r.Identifier, err)
	}
	return nil
}

func validateAuthor(value interface{}) error {
	a, ok := value.(arxiv.Author)
	if !ok {
		return validation.NewError("validation_author", "must be an author")
	}
	return validation.ValidateStruct(&a,
		validation.Field(&a.Keyname, validation.Required),
	)
}

// ToPaper maps a validated record onto a new, unsaved paper. Every author
// entry becomes its own author; nothing is merged.
func ToPaper(r *arxiv.Record) (*store.Paper, error) {
	datestamp, err := parseDate(r.Datestamp)
	if err != nil {
		return nil, err
	}
	created, err := parseDate(r.Created)
	if err != nil {
		return nil, err
	}
	updated, err := parseDate(r.Updated)
	if err != nil {
		return nil, err
	}

	authors := make([]store.Author, 0, len(r.Authors))
	for _, a := range r.Authors {
		authors = append(authors, store.Author{Keyname: a.Keyname, Forenames: a.Forenames})
	}

	return &store.Paper{
		Identifier: r.Identifier,
		Datestamp:  datestamp,
		SetSpec:    r.SetSpec,
		Created:    created,
		Updated:    updated,
		Title:      r.Title,
		Categories: r.Categories,
		License:    r.License,
		Abstract:   r.Abstract,
		Authors:    authors,
	}, nil
}

// parseDate returns nil for a missing date.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(arxiv.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", ErrValidation, s, err)
	}
	return &t, nil
}
