package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Title  string `validate:"required,max=8"`
	Rating int    `validate:"gte=0,lte=5"`
}

func TestStruct(t *testing.T) {
	t.Run("valid input returns nil", func(t *testing.T) {
		assert.Nil(t, Struct(&sampleInput{Title: "ok", Rating: 5}))
	})

	t.Run("messages are grouped by lowercased field", func(t *testing.T) {
		verrs := Struct(&sampleInput{Title: "", Rating: 6})
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"this field is required"}, verrs["title"])
		assert.Equal(t, []string{"must be at most 5"}, verrs["rating"])
	})

	t.Run("max carries the limit", func(t *testing.T) {
		verrs := Struct(&sampleInput{Title: strings.Repeat("x", 9)})
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"must be at most 8 characters"}, verrs["title"])
	})
}

func TestErrorsMerge(t *testing.T) {
	combined := Errors{}

	ticket := Errors{}
	ticket.Add("title", "this field is required")
	review := Errors{}
	review.Add("headline", "this field is required")

	combined.Merge("ticket", ticket)
	combined.Merge("review", review)

	assert.Contains(t, combined, "ticket.title")
	assert.Contains(t, combined, "review.headline")
	assert.NotEmpty(t, combined.Error())
}
