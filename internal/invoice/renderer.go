package invoice

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"keyshop/internal/intent"
)

// Дефолтный брендинг на случай отсутствия шаблона или его полей.
// Рендер никогда не падает из-за неполного шаблона.
var defaultTemplate = Template{
	BrandName:   "cheatloop",
	CompanyName: "Cheatloop",
	AccentColor: "#06b6d4",
	FooterNote:  "Thank you for your purchase!",
}

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Invoice {{.InvoiceNo}}</title>
<style>
  body { font-family: Arial, sans-serif; color: #1e293b; margin: 0; }
  .invoice-wrap { max-width: 700px; margin: 0 auto; padding: 40px; }
  .head { border-bottom: 3px solid {{.AccentColor}}; padding-bottom: 16px; display: flex; justify-content: space-between; }
  .brand { font-size: 24px; font-weight: bold; color: {{.AccentColor}}; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 10px; border-bottom: 1px solid #e2e8f0; }
  .key { font-family: monospace; font-size: 16px; background: #f1f5f9; padding: 8px; }
  .footer { margin-top: 40px; font-size: 12px; color: #64748b; }
</style>
</head>
<body>
<div class="invoice-wrap">
  <div class="head">
    <div>
      {{if .LogoURL}}<img src="{{.LogoURL}}" alt="{{.CompanyName}}" height="48">{{end}}
      <div class="brand">{{.CompanyName}}</div>
    </div>
    <div>
      <div>Invoice: {{.InvoiceNo}}</div>
      <div>Date: {{.Date}}</div>
    </div>
  </div>
  <table>
    <tr><th>Product</th><th>Customer</th><th>Price</th></tr>
    <tr><td>{{.ProductTitle}}</td><td>{{.Email}}</td><td>{{.Price}}</td></tr>
  </table>
  <h3>Product Key</h3>
  <div class="key">{{.KeyValue}}</div>
  <div class="footer">
    {{.FooterNote}}
    {{if .SupportEmail}}<div>Support: {{.SupportEmail}}</div>{{end}}
    {{if .TelegramHandle}}<div>Telegram: {{.TelegramHandle}}</div>{{end}}
    {{if .SiteName}}<div>{{.SiteName}}</div>{{end}}
  </div>
</div>
</body>
</html>
`))

type invoiceData struct {
	InvoiceNo      string
	Date           string
	CompanyName    string
	LogoURL        string
	AccentColor    string
	FooterNote     string
	SupportEmail   string
	TelegramHandle string
	SiteName       string
	ProductTitle   string
	Email          string
	Price          string
	KeyValue       string
}

// Render - чистая функция (заявка, ключ, настройки, цена, шаблон) -> HTML.
// tmpl может быть nil, пустые поля добиваются дефолтным брендингом.
func Render(it *intent.PurchaseIntent, keyValue string, siteSettings map[string]string, price float64, tmpl *Template) (string, error) {
	if it == nil || keyValue == "" {
		return "", fmt.Errorf("intent and key are required")
	}

	t := defaultTemplate
	if tmpl != nil {
		t = mergeWithDefaults(*tmpl)
	}

	data := invoiceData{
		InvoiceNo:      fmt.Sprintf("INV-%s", shortID(it.ID)),
		Date:           it.CreatedAt.Format("02.01.2006"),
		CompanyName:    t.CompanyName,
		LogoURL:        t.LogoURL,
		AccentColor:    t.AccentColor,
		FooterNote:     t.FooterNote,
		SupportEmail:   t.SupportEmail,
		TelegramHandle: t.TelegramHandle,
		SiteName:       siteSettings["site_name"],
		ProductTitle:   it.ProductTitle,
		Email:          it.Email,
		Price:          fmt.Sprintf("$%.2f", price),
		KeyValue:       keyValue,
	}
	if it.CreatedAt.IsZero() {
		data.Date = time.Now().Format("02.01.2006")
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func mergeWithDefaults(t Template) Template {
	if t.CompanyName == "" {
		t.CompanyName = defaultTemplate.CompanyName
	}
	if t.AccentColor == "" {
		t.AccentColor = defaultTemplate.AccentColor
	}
	if t.FooterNote == "" {
		t.FooterNote = defaultTemplate.FooterNote
	}
	return t
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
