// Package view renders the public storefront page. All listing content is
// operator-entered and flows through html/template, so markup typed into a
// listing stays literal text.
package view

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"farmlot/services/storefront/internal/entity"
)

const PlaceholderImage = "/static/placeholder.svg"

// PageData carries everything the storefront page shows: the active
// listings newest first and the distinct categories for the tag strip.
type PageData struct {
	Listings   []*entity.Listing
	Categories []string
}

var funcMap = template.FuncMap{
	"formatPrice": FormatPrice,
	"heroImage":   heroImage,
	"capitalize":  capitalize,
	"lower":       strings.ToLower,
}

var pageTemplate = template.Must(template.New("page").Funcs(funcMap).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Farmlot — Used Farm Equipment</title>
  <link rel="stylesheet" href="/static/store.css">
</head>
<body>
  <header class="store-header">
    <h1>Farmlot</h1>
    <p>Used farm equipment, inspected and ready to work</p>
  </header>

  <nav class="category-strip">
    <button class="category-tag is-selected" data-category="all">All</button>
    {{- range .Categories}}
    <button class="category-tag" data-category="{{lower .}}">{{capitalize .}}</button>
    {{- end}}
  </nav>

  <main class="listing-grid">
    {{- if not .Listings}}
    <p class="empty-note">No equipment available right now. Check back soon.</p>
    {{- end}}
    {{- range .Listings}}
    <article class="listing-card" data-category="{{lower .Category}}">
      {{- $hero := heroImage .}}
      <div class="gallery">
        <img class="gallery-hero" src="{{$hero}}" alt="{{.Name}}">
        {{- if gt (len .Photos) 1}}
        <div class="gallery-thumbs">
          {{- range .Photos}}
          <img class="gallery-thumb{{if eq .URL $hero}} is-active{{end}}" src="{{.URL}}" alt="">
          {{- end}}
        </div>
        {{- end}}
      </div>
      <div class="listing-body">
        <h2>{{.Name}}</h2>
        <span class="listing-tag">{{capitalize .Category}}</span>
        <p class="listing-meta">
          {{- if .Year}}<span>{{.Year}}</span>{{end}}
          {{- if .Hours}}<span>{{.Hours}} hrs</span>{{end}}
          {{- if .Condition}}<span>{{.Condition}}</span>{{end}}
        </p>
        {{- if .Description}}
        <p class="listing-description">{{.Description}}</p>
        {{- end}}
        {{- if .Features}}
        <ul class="feature-list">
          {{- range .Features}}
          <li>{{.}}</li>
          {{- end}}
        </ul>
        {{- end}}
        <p class="listing-price">${{formatPrice .Price}}</p>
        <a class="contact-link" href="mailto:sales@farmlot.dev">Contact Us</a>
      </div>
    </article>
    {{- end}}
  </main>

  <script src="/static/store.js"></script>
</body>
</html>
`))

// RenderPage renders the full storefront page for the given active set.
func RenderPage(data PageData) (string, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func heroImage(l *entity.Listing) string {
	if url := l.MainPhotoURL(); url != "" {
		return url
	}
	return PlaceholderImage
}

// FormatPrice renders a price with thousands separators and two decimals.
func FormatPrice(price float64) string {
	formatted := strconv.FormatFloat(price, 'f', 2, 64)
	parts := strings.SplitN(formatted, ".", 2)

	intPart := parts[0]
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	result := grouped.String() + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
