package gorm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/arxiv-cache/pkg/model"
	"github.com/doodlesbykumbi/arxiv-cache/pkg/server/store"
)

// Ensure PapersStore implements store.PapersStore
var _ store.PapersStore = (*PapersStore)(nil)

const (
	insertPaperSQL = `INSERT INTO papers (identifier, datestamp, set_spec, created, updated, title, categories, license, abstract)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (identifier) DO NOTHING
RETURNING id`

	insertAuthorSQL = `INSERT INTO authors (keyname, forenames) VALUES (?, ?) RETURNING id`

	selectAuthorsSQL = `SELECT pa.paper_id, a.id, a.keyname, a.forenames
FROM paper_authors pa
JOIN authors a ON a.id = pa.author_id
WHERE pa.paper_id IN (?)
ORDER BY pa.paper_id, a.id`

	searchByAuthorSQL = `SELECT * FROM papers
WHERE id IN (
	SELECT pa.paper_id
	FROM paper_authors pa
	JOIN authors a ON a.id = pa.author_id
	WHERE a.keyname || ' ' || a.forenames ILIKE ?
)
ORDER BY id`
)

// PapersStore implements store.PapersStore using GORM
type PapersStore struct {
	db *gorm.DB
}

// NewPapersStore creates a new PapersStore
func NewPapersStore(db *gorm.DB) *PapersStore {
	return &PapersStore{db: db}
}

type authorRow struct {
	PaperID   uint   `gorm:"column:paper_id"`
	ID        uint   `gorm:"column:id"`
	Keyname   string `gorm:"column:keyname"`
	Forenames string `gorm:"column:forenames"`
}

// FindByIdentifier returns the paper with the given catalog identifier.
func (s *PapersStore) FindByIdentifier(ctx context.Context, identifier string) (*store.Paper, error) {
	db := s.db.WithContext(ctx)

	var paper model.Paper
	if err := db.Where("identifier = ?", identifier).First(&paper).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrPaperNotFound
		}
		return nil, fmt.Errorf("finding paper %s: %w", identifier, err)
	}

	papers, err := s.attachAuthors(db, []model.Paper{paper})
	if err != nil {
		return nil, err
	}
	return &papers[0], nil
}

// InsertPaper stores the paper, one author row per entry and the
// association rows atomically.
func (s *PapersStore) InsertPaper(ctx context.Context, paper *store.Paper) (*store.Paper, error) {
	out := *paper
	out.Authors = make([]store.Author, len(paper.Authors))
	copy(out.Authors, paper.Authors)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var paperID uint
		if err := tx.Raw(insertPaperSQL,
			out.Identifier, out.Datestamp, out.SetSpec, out.Created, out.Updated,
			out.Title, out.Categories, out.License, out.Abstract,
		).Scan(&paperID).Error; err != nil {
			return fmt.Errorf("inserting paper %s: %w", out.Identifier, err)
		}
		if paperID == 0 {
			return store.ErrPaperExists
		}
		out.ID = paperID

		for i := range out.Authors {
			var authorID uint
			if err := tx.Raw(insertAuthorSQL, out.Authors[i].Keyname, out.Authors[i].Forenames).Scan(&authorID).Error; err != nil {
				return fmt.Errorf("inserting author %q: %w", out.Authors[i].Keyname, err)
			}
			if authorID == 0 {
				return fmt.Errorf("inserting author %q: no id returned", out.Authors[i].Keyname)
			}
			out.Authors[i].ID = authorID

			if err := tx.Create(&model.PaperAuthor{PaperID: paperID, AuthorID: authorID}).Error; err != nil {
				return fmt.Errorf("linking author %d to paper %d: %w", authorID, paperID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPapers returns every cached paper ordered by id.
func (s *PapersStore) ListPapers(ctx context.Context) ([]store.Paper, error) {
	db := s.db.WithContext(ctx)

	var papers []model.Paper
	if err := db.Order("id").Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	return s.attachAuthors(db, papers)
}

// SearchByAuthorName returns the papers with an author whose full name
// contains name, ignoring case.
func (s *PapersStore) SearchByAuthorName(ctx context.Context, name string) ([]store.Paper, error) {
	db := s.db.WithContext(ctx)

	var papers []model.Paper
	pattern := "%" + escapeLike(name) + "%"
	if err := db.Raw(searchByAuthorSQL, pattern).Scan(&papers).Error; err != nil {
		return nil, fmt.Errorf("searching papers by author %q: %w", name, err)
	}
	return s.attachAuthors(db, papers)
}

// attachAuthors loads the authors of all given papers in one query.
func (s *PapersStore) attachAuthors(db *gorm.DB, papers []model.Paper) ([]store.Paper, error) {
	result := make([]store.Paper, len(papers))
	if len(papers) == 0 {
		return result, nil
	}

	ids := make([]uint, len(papers))
	index := make(map[uint]int, len(papers))
	for i, p := range papers {
		ids[i] = p.ID
		index[p.ID] = i
		result[i] = toStorePaper(p)
	}

	var rows []authorRow
	if err := db.Raw(selectAuthorsSQL, ids).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading authors: %w", err)
	}
	for _, r := range rows {
		i, ok := index[r.PaperID]
		if !ok {
			continue
		}
		result[i].Authors = append(result[i].Authors, store.Author{
			ID:        r.ID,
			Keyname:   r.Keyname,
			Forenames: r.Forenames,
		})
	}
	return result, nil
}

func toStorePaper(p model.Paper) store.Paper {
	return store.Paper{
		ID:         p.ID,
		Identifier: p.Identifier,
		Datestamp:  p.Datestamp,
		SetSpec:    p.SetSpec,
		Created:    p.Created,
		Updated:    p.Updated,
		Title:      p.Title,
		Categories: p.Categories,
		License:    p.License,
		Abstract:   p.Abstract,
		Authors:    []store.Author{},
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes name match literally inside an ILIKE pattern.
func escapeLike(name string) string {
	return likeEscaper.Replace(name)
}
