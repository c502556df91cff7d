package model

// Author is a single author entry as listed on one paper.
type Author struct {
	ID        uint   `gorm:"column:id;primaryKey"`
	Keyname   string `gorm:"column:keyname;not null;index"`
	Forenames string `gorm:"column:forenames;not null;default:'';index"`
}

func (Author) TableName() string {
	return "authors"
}

// FullName returns the "keyname forenames" form used by author search.
func (a Author) FullName() string {
	if a.Forenames == "" {
		return a.Keyname
	}
	return a.Keyname + " " + a.Forenames
}
