// Package view renders the dashboard HTML on the server. Everything that
// ends up in a page goes through html/template so listing fields typed by
// operators stay inert text.
package view

import (
	"bytes"
	"html/template"
	"strconv"
	"strings"

	"farmlot/services/admin/internal/entity"
)

const PlaceholderImage = "/static/placeholder.svg"

var funcMap = template.FuncMap{
	"formatPrice": FormatPrice,
	"thumbnail":   thumbnail,
	"capitalize":  capitalize,
}

var tableRowsTemplate = template.Must(template.New("rows").Funcs(funcMap).Parse(`
{{- range . -}}
<tr data-listing-id="{{.ID}}">
  <td class="listing-thumb"><img src="{{thumbnail .}}" alt="{{.Name}}"></td>
  <td class="listing-name">{{.Name}}</td>
  <td class="listing-category">{{capitalize .Category}}</td>
  <td class="listing-price">${{formatPrice .Price}}</td>
  <td class="listing-status">
    {{- if .IsActive}}<span class="badge badge-active">Active</span>
    {{- else}}<span class="badge badge-hidden">Hidden</span>{{end}}
  </td>
  <td class="listing-actions">
    <button class="btn-edit" data-id="{{.ID}}">Edit</button>
    <button class="btn-toggle" data-id="{{.ID}}" data-active="{{.IsActive}}">
      {{- if .IsActive}}Hide{{else}}Show{{end}}</button>
    <button class="btn-delete" data-id="{{.ID}}">Delete</button>
  </td>
</tr>
{{- end -}}
`))

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Farmlot Admin</title>
  <link rel="stylesheet" href="/static/admin.css">
</head>
<body>
  <header class="admin-header">
    <h1>Equipment Listings</h1>
    <button id="btn-new-listing">New Listing</button>
    <button id="btn-sign-out">Sign Out</button>
  </header>
  <main>
    <table class="listings-table">
      <thead>
        <tr><th></th><th>Name</th><th>Category</th><th>Price</th><th>Status</th><th></th></tr>
      </thead>
      <tbody id="listings-body">
        <tr><td colspan="6" class="loading">Loading listings…</td></tr>
      </tbody>
    </table>
  </main>

  <div id="editor-overlay" class="editor-overlay is-hidden">
    <div class="editor-modal">
      <h2 id="editor-title">New Listing</h2>
      <form id="editor-form">
        <label>Name <input name="name" required></label>
        <label>Category <input name="category"></label>
        <label>Price <input name="price" inputmode="decimal"></label>
        <label>Condition <input name="condition"></label>
        <label>Year <input name="year" type="number" min="0"></label>
        <label>Hours <input name="hours" type="number" min="0"></label>
        <label>Description <textarea name="description" rows="3"></textarea></label>
        <label>Features (one per line) <textarea name="features" rows="3"></textarea></label>
        <label class="editor-active"><input name="is_active" type="checkbox" checked> Visible on storefront</label>
      </form>
      <div class="editor-photos">
        <div id="photo-strip"></div>
        <label class="photo-add">Add photos
          <input id="photo-input" type="file" accept="image/*" multiple>
        </label>
        <p id="photo-messages"></p>
      </div>
      <p id="editor-error"></p>
      <div class="editor-buttons">
        <button id="btn-save-listing">Save</button>
        <button id="btn-cancel-editor">Cancel</button>
      </div>
    </div>
  </div>

  <script src="/static/admin.js"></script>
</body>
</html>
`))

// RenderTableRows renders the dashboard table body for the given listings,
// newest first as delivered by the repository.
func RenderTableRows(listings []*entity.Listing) (string, error) {
	var buf bytes.Buffer
	if err := tableRowsTemplate.Execute(&buf, listings); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderDashboard renders the static dashboard shell; the table body is
// filled in by a follow-up request to /api/v1/listings/table.
func RenderDashboard() (string, error) {
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, nil); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func thumbnail(l *entity.Listing) string {
	if url := l.MainPhotoURL(); url != "" {
		return url
	}
	return PlaceholderImage
}

// FormatPrice renders a price with thousands separators and two decimals:
// 45500 -> "45,500.00".
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
