package views

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/studyhub/internal/contact"
	"github.com/pavelanni/studyhub/internal/content"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
)

func TestContactPageEscapesDraft(t *testing.T) {
	require.NoError(t, appI18n.Init("en"))
	lib, err := content.Load()
	require.NoError(t, err)

	view := ContactView{Draft: contact.Message{Name: `"><script>alert(1)</script>`}}
	var buf bytes.Buffer
	require.NoError(t, ContactPage(lib, view).Render(context.Background(), &buf))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestEsc(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt;", esc("a & b <c>"))
}
