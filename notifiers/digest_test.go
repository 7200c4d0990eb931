package notifiers

import (
	"strings"
	"testing"
	"time"

	"github.com/kova98/newsdigest/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runDate = time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC)

func techSubscription() models.Subscription {
	return models.Subscription{ID: "1", Title: "Tech", Email: "a@x.com"}
}

func TestDigestSubject(t *testing.T) {
	assert.Equal(t, "Tech News Digest: 01/02/2024", DigestSubject("Tech", runDate))
	assert.Equal(t, "Tech News Digest: 12/31/2025", DigestSubject("Tech", time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)))
}

func TestDigestEmail(t *testing.T) {
	items := []models.Item{{
		Created:     "2024-01-01",
		Source:      "Blog",
		Title:       "Post",
		Link:        "http://x/1",
		Description: "Hello world...Keep reading more stuff",
	}}

	email, err := DigestEmail(techSubscription(), items, runDate)

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email.To)
	assert.Equal(t, "Tech News Digest: 01/02/2024", email.Subject)
	assert.Equal(t, "Tech News Digest: 01/02/2024\n\n2024-01-01\nBlog\nPost\nhttp://x/1\n\n", email.Text)

	assert.Contains(t, email.HTML, "<h1>Tech News Digest: 01/02/2024</h1>")
	assert.Contains(t, email.HTML, `<h3 style="margin:0 0 0.5em;font-size:1em">Blog</h3>`)
	assert.Contains(t, email.HTML, `<a href="http://x/1">Post</a>`)
	assert.Contains(t, email.HTML, "<p>Hello world</p>")
	assert.NotContains(t, email.HTML, "Keep reading")
	assert.True(t, strings.HasPrefix(email.HTML, "<html>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(email.HTML), "</html>"))
}

func TestDigestEmail_KeepsAPIOrder(t *testing.T) {
	items := []models.Item{
		{Title: "Zebra", Source: "S1"},
		{Title: "Apple", Source: "S2"},
	}

	email, err := DigestEmail(techSubscription(), items, runDate)

	require.NoError(t, err)
	assert.Less(t, strings.Index(email.Text, "Zebra"), strings.Index(email.Text, "Apple"))
	assert.Less(t, strings.Index(email.HTML, "Zebra"), strings.Index(email.HTML, "Apple"))
	assert.Equal(t, 2, strings.Count(email.HTML, "<h2 "))
}

func TestDigestEmail_MissingFieldsRenderEmpty(t *testing.T) {
	email, err := DigestEmail(techSubscription(), []models.Item{{}}, runDate)

	require.NoError(t, err)
	assert.Equal(t, "Tech News Digest: 01/02/2024\n\n\n\n\n\n\n", email.Text)
	assert.Contains(t, email.HTML, `<a href=""></a>`)
	assert.Contains(t, email.HTML, "<p></p>")
	assert.Contains(t, email.HTML, "</body>")
}

func TestDigestEmail_EscapesAndSanitizes(t *testing.T) {
	items := []models.Item{{
		Title:       "<script>x</script>",
		Link:        "javascript:alert(1)",
		Description: "<b>Hi</b> <script>bad()</script>",
	}}

	email, err := DigestEmail(techSubscription(), items, runDate)

	require.NoError(t, err)
	assert.Contains(t, email.HTML, "&lt;script&gt;x&lt;/script&gt;")
	assert.NotContains(t, email.HTML, "javascript:")
	assert.Contains(t, email.HTML, "<b>Hi</b>")
	assert.NotContains(t, email.HTML, "bad()")
	assert.Contains(t, email.Text, "<script>x</script>")
}

func TestDigestEmail_NoItems(t *testing.T) {
	_, err := DigestEmail(techSubscription(), nil, runDate)

	assert.ErrorIs(t, err, ErrNoItems)
}
