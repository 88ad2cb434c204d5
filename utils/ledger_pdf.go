package utils

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"

	"roadwaysledger/models"
	"roadwaysledger/view"
)

//go:embed templates/ledger_template.html
var templateFS embed.FS

var ledgerTemplate = template.Must(template.ParseFS(templateFS, "templates/ledger_template.html"))

// LedgerPDFData feeds the printable ledger template.
type LedgerPDFData struct {
	CompanyName  string
	Address      string
	GSTIN        string
	Contacts     string
	Footnote     string
	Table        view.Table
	FreightTotal string
	TotalWords   string
	GeneratedAt  string
}

// NewLedgerPDFData builds the print model. profile may be nil, in which case
// only companyName is printed in the heading.
func NewLedgerPDFData(profile *models.CompanyProfile, companyName string, records []models.Bilty, dateFormat string, now time.Time) LedgerPDFData {
	total := decimal.Zero
	for _, b := range records {
		total = total.Add(b.Freight.Decimal())
	}

	data := LedgerPDFData{
		CompanyName:  companyName,
		Table:        view.BuildTable(records, dateFormat),
		FreightTotal: "₹ " + total.StringFixed(2),
		TotalWords:   AmountInWords(total),
		GeneratedAt:  now.Format(dateFormat + " 15:04"),
	}
	if profile != nil {
		if profile.CompanyName != "" {
			data.CompanyName = profile.CompanyName
		}
		data.Address = joinNonEmpty(", ", profile.Address, profile.City, profile.State, profile.Pincode)
		data.GSTIN = profile.GSTIN
		data.Contacts = profile.Contacts()
		data.Footnote = profile.Footnote
	}
	return data
}

// RenderLedgerHTML executes the print template.
func RenderLedgerHTML(data LedgerPDFData) ([]byte, error) {
	var buf bytes.Buffer
	if err := ledgerTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render ledger template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateLedgerPDF prints the ledger on landscape A4 with headless Chrome.
func GenerateLedgerPDF(ctx context.Context, data LedgerPDFData, timeout time.Duration) ([]byte, error) {
	if len(data.Table.Rows) == 0 {
		return nil, view.ErrNoData
	}
	html, err := RenderLedgerHTML(data)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "ledger_*.html")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(html); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	ctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithLandscape(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.7).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("print ledger pdf: %w", err)
	}
	return pdf, nil
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
