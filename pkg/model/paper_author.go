package model

// PaperAuthor links a paper to one of its authors. It carries no other data.
type PaperAuthor struct {
	PaperID  uint `gorm:"column:paper_id;primaryKey;autoIncrement:false"`
	AuthorID uint `gorm:"column:author_id;primaryKey;autoIncrement:false"`
}

func (PaperAuthor) TableName() string {
	return "paper_authors"
}
