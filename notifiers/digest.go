package notifiers

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"text/template"
	"time"

	"github.com/kova98/newsdigest/models"
	"github.com/kova98/newsdigest/textclean"
	"github.com/pkg/errors"
)

//go:embed templates/digest.txt templates/digest.html
var digestTemplates embed.FS

var (
	textTemplates = template.Must(template.New("text").ParseFS(digestTemplates, "templates/digest.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.New("html").ParseFS(digestTemplates, "templates/digest.html"))
)

// SubjectDateLayout renders dates as MM/DD/YYYY regardless of locale.
const SubjectDateLayout = "01/02/2006"

var ErrNoItems = errors.New("digest has no items")

type digestItem struct {
	Created     string
	Source      string
	Title       string
	Link        string
	Description htmltemplate.HTML
}

func DigestSubject(title string, date time.Time) string {
	return title + " News Digest: " + date.Format(SubjectDateLayout)
}

// DigestEmail renders the plain text and HTML digest of items for sub.
// date is the day of the run and only affects the subject line.
func DigestEmail(sub models.Subscription, items []models.Item, date time.Time) (models.Email, error) {
	if len(items) == 0 {
		return models.Email{}, ErrNoItems
	}

	digestItems := make([]digestItem, 0, len(items))
	for _, item := range items {
		description := textclean.CleanDescription(item.Description, item.Title)
		digestItems = append(digestItems, digestItem{
			Created:     item.Created,
			Source:      item.Source,
			Title:       item.Title,
			Link:        item.Link,
			Description: htmltemplate.HTML(textclean.SanitizeHTML(description)),
		})
	}

	tmplData := struct {
		Subject string
		Items   []digestItem
	}{
		Subject: DigestSubject(sub.Title, date),
		Items:   digestItems,
	}

	var text bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&text, "digest.txt", tmplData); err != nil {
		return models.Email{}, errors.Wrap(err, "render digest text template")
	}

	var html bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, "digest.html", tmplData); err != nil {
		return models.Email{}, errors.Wrap(err, "render digest html template")
	}

	return models.Email{
		To:      sub.Email,
		Subject: tmplData.Subject,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
