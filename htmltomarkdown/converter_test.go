package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/storyscout"
	"github.com/fwojciec/storyscout/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>The rain had not stopped for three days.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "The rain had not stopped for three days.")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Chapter One</h1><h2>The Letter</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Chapter One")
		assert.Contains(t, md, "## The Letter")
	})

	t.Run("converts links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Read <a href="https://www.wattpad.com/story/1">the story</a> here.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[the story](https://www.wattpad.com/story/1)")
	})

	t.Run("converts emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p><strong>bold</strong> and <em>italic</em></p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "**bold**")
		assert.Contains(t, md, "*italic*")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, storyscout.EINVALID, storyscout.ErrorCode(err))
	})
}
