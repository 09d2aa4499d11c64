package main

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/turboszerviz/turbo_backend/models"
)

// Hungarian labels for the printable documents.
var statusLabels = map[models.WorkStatus]string{
	models.WorkStatusDraft:      "Piszkozat",
	models.WorkStatusReceived:   "Beérkezett",
	models.WorkStatusInProgress: "Vizsgálat alatt",
	models.WorkStatusQuoted:     "Árajánlat készült",
	models.WorkStatusAccepted:   "Elfogadva",
	models.WorkStatusRejected:   "Elutasítva",
	models.WorkStatusWorking:    "Javítás alatt",
	models.WorkStatusReady:      "Kész",
	models.WorkStatusDelivered:  "Átvett",
	models.WorkStatusFinalized:  "Véglegesítve",
}

func statusLabel(status models.WorkStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

func yesNo(b bool) string {
	if b {
		return "Igen"
	}
	return "Nem"
}

func checkmark(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

var worksheetTmpl = template.Must(template.New("worksheet").Funcs(template.FuncMap{
	"money":  func(d decimal.Decimal) string { return d.StringFixed(2) },
	"yesNo":  yesNo,
	"check":  checkmark,
	"status": statusLabel,
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Munkalap #{{ .WorkOrder.WorkNumber }}</title>
<style>
@media print {
	@page { margin: 20mm; }
	body { margin: 0; }
	.no-print { display: none !important; }
}
body { font-family: Arial, sans-serif; margin: 20px; line-height: 1.5; color: #333; }
.header { text-align: center; border-bottom: 2px solid #333; padding-bottom: 15px; margin-bottom: 20px; }
.work-number { font-size: 24px; font-weight: bold; margin: 10px 0; }
.section { margin-bottom: 20px; }
.section h3 { background-color: #f5f5f5; padding: 8px; margin: 0 0 10px 0; border-left: 4px solid #333; }
.grid { display: flex; gap: 20px; }
.column { flex: 1; }
.info-row { margin: 5px 0; }
.label { font-weight: bold; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f5f5f5; font-weight: bold; }
.pricing { border: 2px solid #333; padding: 15px; background-color: #f9f9f9; }
.total { font-size: 1.3em; font-weight: bold; }
.footer { text-align: center; margin-top: 30px; padding-top: 15px; border-top: 1px solid #ccc; font-size: 12px; color: #666; }
</style>
</head>
<body>
<div class="header">
	<h1>TURBÓ SZERVIZ</h1>
	<p>Turbófeltöltő javítás és karbantartás</p>
	<div class="work-number">MUNKALAP #{{ .WorkOrder.WorkNumber }}</div>
</div>

<div class="grid">
	<div class="column">
		<div class="section">
			<h3>Ügyfél adatok</h3>
			<div class="info-row"><span class="label">Név:</span> {{ .Client.Name }}</div>
			<div class="info-row"><span class="label">Telefon:</span> {{ .Client.Phone }}</div>
			{{ if .Client.Address }}<div class="info-row"><span class="label">Cím:</span> {{ .Client.Address }}</div>{{ end }}
			{{ if .Client.CompanyName }}<div class="info-row"><span class="label">Cégnév:</span> {{ .Client.CompanyName }}</div>{{ end }}
		</div>
	</div>
	<div class="column">
		<div class="section">
			<h3>Jármű adatok</h3>
			<div class="info-row"><span class="label">Márka:</span> {{ .WorkOrder.CarMake }}</div>
			<div class="info-row"><span class="label">Típus:</span> {{ .WorkOrder.CarModel }}</div>
			{{ if .WorkOrder.CarYear }}<div class="info-row"><span class="label">Évjárat:</span> {{ .WorkOrder.CarYear }}</div>{{ end }}
			{{ if .WorkOrder.EngineCode }}<div class="info-row"><span class="label">Motorkód:</span> {{ .WorkOrder.EngineCode }}</div>{{ end }}
		</div>
	</div>
</div>

<div class="section">
	<h3>Turbó információk</h3>
	<div class="info-row"><span class="label">Turbó kód:</span> {{ .WorkOrder.TurboCode }}</div>
	<div class="info-row"><span class="label">Beérkezés dátuma:</span> {{ .WorkOrder.ReceivedDate.Format "2006.01.02" }}</div>
	{{ if .WorkOrder.GeneralNotes }}<div class="info-row"><span class="label">Megjegyzések:</span> {{ .WorkOrder.GeneralNotes }}</div>{{ end }}
</div>

{{ if .WorkOrder.Parts }}
<div class="section">
	<h3>Kiválasztott alkatrészek</h3>
	<table>
		<thead>
			<tr><th>Alkatrész kód</th><th>Kategória</th><th>Szállító</th><th>Ár (LEI)</th><th>Kiválasztva</th></tr>
		</thead>
		<tbody>
			{{ range .WorkOrder.Parts }}
			<tr><td>{{ .PartCode }}</td><td>{{ .Category }}</td><td>{{ .Supplier }}</td><td>{{ money .Price }}</td><td>{{ check .Selected }}</td></tr>
			{{ end }}
		</tbody>
	</table>
</div>
{{ end }}

{{ if .WorkOrder.Processes }}
<div class="section">
	<h3>Munkafolyamatok</h3>
	<table>
		<thead>
			<tr><th>Folyamat</th><th>Kategória</th><th>Becsült idő (perc)</th><th>Ár (LEI)</th><th>Kiválasztva</th></tr>
		</thead>
		<tbody>
			{{ range .WorkOrder.Processes }}
			<tr><td>{{ .ProcessName }}</td><td>{{ .Category }}</td><td>{{ .EstimatedTime }}</td><td>{{ money .Price }}</td><td>{{ check .Selected }}</td></tr>
			{{ end }}
		</tbody>
	</table>
</div>
{{ end }}

<div class="grid">
	<div class="column">
		<div class="section">
			<h3>Státusz információk</h3>
			<div class="info-row"><span class="label">Státusz:</span> {{ status .WorkOrder.Status }}</div>
			<div class="info-row"><span class="label">Árajánlat küldve:</span> {{ yesNo .WorkOrder.QuoteSent }}</div>
			<div class="info-row"><span class="label">Árajánlat elfogadva:</span> {{ yesNo .WorkOrder.QuoteAccepted }}</div>
			{{ if .WorkOrder.EstimatedCompletion }}<div class="info-row"><span class="label">Becsült készre kerülés:</span> {{ .WorkOrder.EstimatedCompletion.Format "2006.01.02" }}</div>{{ end }}
		</div>
	</div>
	<div class="column">
		<div class="section pricing">
			<h3>Árazás</h3>
			<div class="info-row"><span class="label">Tisztítás:</span> {{ money .WorkOrder.CleaningPrice }} LEI</div>
			<div class="info-row"><span class="label">Felújítás:</span> {{ money .WorkOrder.ReconditioningPrice }} LEI</div>
			<div class="info-row"><span class="label">Turbó:</span> {{ money .WorkOrder.TurboPrice }} LEI</div>
			<hr>
			<div class="info-row total"><span class="label">Összesen:</span> {{ money .TotalAmount }} LEI</div>
		</div>
	</div>
</div>

<div class="footer">
	<p>Munkalap generálva: {{ .Now.Format "2006-01-02 15:04:05" }}</p>
	<p>Turbó Szerviz Kezelő Rendszer</p>
</div>

<script class="no-print">window.onload = function() { window.print(); };</script>
</body>
</html>
`))

type worksheetData struct {
	WorkOrder   *models.WorkOrder
	Client      *models.Client
	TotalAmount decimal.Decimal
	Now         time.Time
}

func loadWorksheetData(c *gin.Context) (*worksheetData, bool) {
	workOrder, err := models.GetWorkOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	client, err := models.GetClient(c.Request.Context(), workOrder.ClientId)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return &worksheetData{
		WorkOrder:   workOrder,
		Client:      client,
		TotalAmount: workOrder.TotalAmount(),
		Now:         time.Now().UTC(),
	}, true
}

// workOrderHtmlHandler renders the printable worksheet. The page calls
// window.print() on load.
func workOrderHtmlHandler(c *gin.Context) {
	data, ok := loadWorksheetData(c)
	if !ok {
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := worksheetTmpl.Execute(c.Writer, data); err != nil {
		_ = c.Error(err)
	}
}

func workOrderPrintDataHandler(c *gin.Context) {
	data, ok := loadWorksheetData(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"work_order": data.WorkOrder,
		"client":     data.Client,
	})
}

// workOrderPdfHandler renders the worksheet as a PDF download. Text runs
// through the cp1250 translator so Hungarian accents survive the core fonts.
func workOrderPdfHandler(c *gin.Context) {
	data, ok := loadWorksheetData(c)
	if !ok {
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("cp1250")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	sectionTitle := func(title string) {
		pdf.SetFillColor(245, 245, 245)
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, tr(title), "", 1, "L", true, 0, "")
		pdf.Ln(1)
	}
	infoRow := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(50, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, tr(value), "", 1, "L", false, 0, "")
	}

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, tr("TURBÓ SZERVIZ"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, tr("Turbófeltöltő javítás és karbantartás"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr("MUNKALAP #"+data.WorkOrder.WorkNumber), "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	sectionTitle("Ügyfél adatok")
	infoRow("Név:", data.Client.Name)
	infoRow("Telefon:", data.Client.Phone)
	if data.Client.Address != "" {
		infoRow("Cím:", data.Client.Address)
	}
	if data.Client.CompanyName != "" {
		infoRow("Cégnév:", data.Client.CompanyName)
	}
	pdf.Ln(3)

	sectionTitle("Jármű adatok")
	infoRow("Márka:", data.WorkOrder.CarMake)
	infoRow("Típus:", data.WorkOrder.CarModel)
	if data.WorkOrder.CarYear != nil {
		infoRow("Évjárat:", fmt.Sprintf("%d", *data.WorkOrder.CarYear))
	}
	if data.WorkOrder.EngineCode != "" {
		infoRow("Motorkód:", data.WorkOrder.EngineCode)
	}
	pdf.Ln(3)

	sectionTitle("Turbó információk")
	infoRow("Turbó kód:", data.WorkOrder.TurboCode)
	infoRow("Beérkezés dátuma:", data.WorkOrder.ReceivedDate.Format("2006.01.02"))
	if data.WorkOrder.GeneralNotes != "" {
		infoRow("Megjegyzések:", data.WorkOrder.GeneralNotes)
	}
	pdf.Ln(3)

	if len(data.WorkOrder.Parts) > 0 {
		sectionTitle("Kiválasztott alkatrészek")
		pdf.SetFont("Arial", "B", 9)
		widths := []float64{45, 35, 35, 30, 25}
		headers := []string{"Alkatrész kód", "Kategória", "Szállító", "Ár (LEI)", "Kiválasztva"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, part := range data.WorkOrder.Parts {
			selected := "Nem"
			if part.Selected {
				selected = "Igen"
			}
			row := []string{part.PartCode, part.Category, part.Supplier, part.Price.StringFixed(2), selected}
			for i, v := range row {
				pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	if len(data.WorkOrder.Processes) > 0 {
		sectionTitle("Munkafolyamatok")
		pdf.SetFont("Arial", "B", 9)
		widths := []float64{50, 35, 30, 30, 25}
		headers := []string{"Folyamat", "Kategória", "Idő (perc)", "Ár (LEI)", "Kiválasztva"}
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, process := range data.WorkOrder.Processes {
			selected := "Nem"
			if process.Selected {
				selected = "Igen"
			}
			row := []string{
				process.ProcessName, process.Category,
				fmt.Sprintf("%d", process.EstimatedTime),
				process.Price.StringFixed(2), selected,
			}
			for i, v := range row {
				pdf.CellFormat(widths[i], 6, tr(v), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(3)
	}

	sectionTitle("Státusz információk")
	infoRow("Státusz:", statusLabel(data.WorkOrder.Status))
	infoRow("Árajánlat küldve:", yesNo(data.WorkOrder.QuoteSent))
	infoRow("Árajánlat elfogadva:", yesNo(data.WorkOrder.QuoteAccepted))
	if data.WorkOrder.EstimatedCompletion != nil {
		infoRow("Becsült készre kerülés:", data.WorkOrder.EstimatedCompletion.Format("2006.01.02"))
	}
	pdf.Ln(3)

	sectionTitle("Árazás")
	infoRow("Tisztítás:", data.WorkOrder.CleaningPrice.StringFixed(2)+" LEI")
	infoRow("Felújítás:", data.WorkOrder.ReconditioningPrice.StringFixed(2)+" LEI")
	infoRow("Turbó:", data.WorkOrder.TurboPrice.StringFixed(2)+" LEI")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr("Összesen: "+data.TotalAmount.StringFixed(2)+" LEI"), "T", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, tr("Munkalap generálva: "+data.Now.Format("2006-01-02 15:04:05")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, tr("Turbó Szerviz Kezelő Rendszer"), "", 1, "C", false, 0, "")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=munkalap_%s.pdf", data.WorkOrder.WorkNumber))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if err := pdf.Output(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
