package client

import (
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"customer-panel/internal/domain"
)

// All rendering goes through typed view-models and html/template so every
// user-controlled field is escaped before it reaches markup. Search-term
// highlighting escapes both the candidate text and the term before matching.

var (
	noticeTmpl = template.Must(template.New("notice").Parse(
		`<div class="panel-notice">{{.}}</div>`))

	rowsTmpl = template.Must(template.New("rows").Parse(strings.TrimSpace(`
{{- if not .Rows -}}
<tr><td colspan="7" class="panel-empty">{{.NoData}}</td></tr>
{{- else -}}
{{- range .Rows -}}
<tr class="panel-customer-row" data-customer-id="{{.ID}}"><td>{{.Name}}</td><td>{{.Email}}</td><td>{{.Phone}}</td><td>{{.CourseCount}}</td><td>{{.AvgProgress}}%</td><td>{{.CertificateCount}}</td><td>{{.LastActivity}}</td></tr>
{{- end -}}
{{- end -}}`)))

	basicInfoTmpl = template.Must(template.New("basicInfo").Parse(strings.TrimSpace(`
<dl class="panel-basic-info">
<dt>Name</dt><dd>{{.DisplayName}}</dd>
<dt>Email</dt><dd>{{.Email}}</dd>
{{- if .Phone}}<dt>Phone</dt><dd>{{.Phone}}</dd>{{end}}
{{- if .Address}}<dt>Address</dt><dd>{{.Address}}</dd>{{end}}
<dt>Registered</dt><dd>{{.Registered}}</dd>
{{- if .LastLogin}}<dt>Last login</dt><dd>{{.LastLogin}}</dd>{{end}}
</dl>`)))

	coursesTmpl = template.Must(template.New("courses").Parse(strings.TrimSpace(`
{{- if not .Courses -}}
<div class="panel-empty">{{.NoData}}</div>
{{- else -}}
<table class="panel-courses"><tbody>
{{- range .Courses -}}
<tr><td>{{.Title}}</td><td>{{.Progress}}%</td><td>{{.Lessons}}</td><td>{{.Enrolled}}</td><td>{{.Status}}</td></tr>
{{- end -}}
</tbody></table>
{{- end -}}`)))

	certificatesTmpl = template.Must(template.New("certificates").Parse(strings.TrimSpace(`
{{- if not .Certificates -}}
<div class="panel-empty">{{.NoData}}</div>
{{- else -}}
<table class="panel-certificates"><tbody>
{{- range .Certificates -}}
<tr><td>{{.CourseTitle}}</td><td>{{.CertificateID}}</td><td>{{.Earned}}</td><td>{{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener">View</a>{{end}}</td></tr>
{{- end -}}
</tbody></table>
{{- end -}}`)))

	ordersTmpl = template.Must(template.New("orders").Parse(strings.TrimSpace(`
{{- if not .Orders -}}
<div class="panel-empty">{{.NoData}}</div>
{{- else -}}
<table class="panel-orders"><tbody>
{{- range .Orders -}}
<tr><td>#{{.ID}}</td><td>{{.Date}}</td><td>{{.Total}}</td><td>{{.Status}}</td><td>{{range .Items}}<span class="panel-order-item">{{.Name}} &times; {{.Quantity}}</span>{{end}}</td></tr>
{{- end -}}
</tbody></table>
{{- end -}}`)))
)

type customerRowView struct {
	ID               int64
	Name             template.HTML
	Email            template.HTML
	Phone            template.HTML
	CourseCount      int
	AvgProgress      string
	CertificateCount int
	LastActivity     string
}

// RenderCustomerRows renders the list-view table body with the search term
// highlighted in the matchable fields.
func RenderCustomerRows(list []domain.CustomerSummary, search string, strs Strings) string {
	rows := make([]customerRowView, 0, len(list))
	for _, c := range list {
		rows = append(rows, customerRowView{
			ID:               c.ID,
			Name:             highlight(c.DisplayName, search),
			Email:            highlight(c.Email, search),
			Phone:            highlight(c.Phone, search),
			CourseCount:      c.CourseCount,
			AvgProgress:      trimFloat(c.AverageProgress),
			CertificateCount: c.CertificateCount,
			LastActivity:     c.LastActivity,
		})
	}
	var b strings.Builder
	if err := rowsTmpl.Execute(&b, struct {
		Rows   []customerRowView
		NoData string
	}{rows, strs.NoData}); err != nil {
		return renderNotice(strs.Error)
	}
	return b.String()
}

func renderTab(tab string, payload *domain.DetailPayload, strs Strings) (string, error) {
	if payload == nil {
		return renderNotice(strs.NoData), nil
	}
	switch tab {
	case "courses":
		return renderCourses(payload.Courses, strs)
	case "certificates":
		return renderCertificates(payload.Certificates, strs)
	case "orders":
		return renderOrders(payload.Orders, strs)
	default:
		return renderBasicInfo(payload.BasicInfo)
	}
}

func renderBasicInfo(c domain.Customer) (string, error) {
	view := struct {
		DisplayName, Email, Phone, Address, Registered, LastLogin string
	}{
		DisplayName: c.DisplayName,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Registered:  formatDate(c.Registered),
	}
	if c.LastLogin != nil {
		view.LastLogin = formatDate(*c.LastLogin)
	}
	var b strings.Builder
	if err := basicInfoTmpl.Execute(&b, view); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderCourses(list []domain.CourseEnrollment, strs Strings) (string, error) {
	type row struct {
		Title, Progress, Lessons, Enrolled, Status string
	}
	rows := make([]row, 0, len(list))
	for _, c := range list {
		status := "In progress"
		switch {
		case c.Completed && c.CompletionDate != nil:
			status = "Completed " + formatDate(*c.CompletionDate)
		case c.Completed:
			status = "Completed"
		case c.Progress == 0:
			status = "Not started"
		}
		rows = append(rows, row{
			Title:    c.Title,
			Progress: trimFloat(c.Progress),
			Lessons:  fmt.Sprintf("%d/%d lessons", c.LessonsCompleted, c.TotalLessons),
			Enrolled: formatDate(c.EnrolledDate),
			Status:   status,
		})
	}
	var b strings.Builder
	if err := coursesTmpl.Execute(&b, struct {
		Courses []row
		NoData  string
	}{rows, strs.NoData}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderCertificates(list []domain.Certificate, strs Strings) (string, error) {
	type row struct {
		CourseTitle, CertificateID, Earned, Link string
	}
	rows := make([]row, 0, len(list))
	for _, c := range list {
		rows = append(rows, row{
			CourseTitle:   c.CourseTitle,
			CertificateID: c.CertificateID,
			Earned:        formatDate(c.EarnedDate),
			Link:          c.CertificateLink,
		})
	}
	var b strings.Builder
	if err := certificatesTmpl.Execute(&b, struct {
		Certificates []row
		NoData       string
	}{rows, strs.NoData}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderOrders(list []domain.Order, strs Strings) (string, error) {
	type item struct {
		Name     string
		Quantity int
	}
	type row struct {
		ID                  int64
		Date, Total, Status string
		Items               []item
	}
	rows := make([]row, 0, len(list))
	for _, o := range list {
		items := make([]item, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, item{Name: it.Name, Quantity: it.Quantity})
		}
		rows = append(rows, row{
			ID:     o.ID,
			Date:   formatDate(o.Date),
			Total:  o.Total,
			Status: o.Status,
			Items:  items,
		})
	}
	var b strings.Builder
	if err := ordersTmpl.Execute(&b, struct {
		Orders []row
		NoData string
	}{rows, strs.NoData}); err != nil {
		return "", err
	}
	return b.String(), nil
}

func renderNotice(message string) string {
	var b strings.Builder
	if err := noticeTmpl.Execute(&b, message); err != nil {
		return ""
	}
	return b.String()
}

// highlight escapes text and term, then wraps case-insensitive matches of the
// escaped term in <mark>. Escaping happens before the pattern is built, so
// neither side can smuggle markup in. Matching is rune-wise with per-rune case
// folding; lowercasing a whole string can change its byte length, so byte
// offsets into a lowered copy are never safe to reuse.
func highlight(text, term string) template.HTML {
	escText := template.HTMLEscapeString(text)
	if term == "" {
		return template.HTML(escText)
	}
	termRunes := []rune(template.HTMLEscapeString(term))
	textRunes := []rune(escText)

	var b strings.Builder
	for i := 0; i < len(textRunes); {
		if matchesFold(textRunes, i, termRunes) {
			b.WriteString("<mark>")
			b.WriteString(string(textRunes[i : i+len(termRunes)]))
			b.WriteString("</mark>")
			i += len(termRunes)
			continue
		}
		b.WriteRune(textRunes[i])
		i++
	}
	return template.HTML(b.String())
}

func matchesFold(text []rune, at int, term []rune) bool {
	if len(term) == 0 || at+len(term) > len(text) {
		return false
	}
	for j, r := range term {
		if unicode.ToLower(text[at+j]) != unicode.ToLower(r) {
			return false
		}
	}
	return true
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func formatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
