package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorFullName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"keyname and forenames", Author{Keyname: "Smith", Forenames: "John"}, "Smith John"},
		{"keyname only", Author{Keyname: "Collaboration"}, "Collaboration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.FullName())
		})
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "authors", Author{}.TableName())
	assert.Equal(t, "papers", Paper{}.TableName())
	assert.Equal(t, "paper_authors", PaperAuthor{}.TableName())
}
