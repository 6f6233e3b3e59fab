package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/phpdave11/gofpdf"
)

// RenderDailyPDF renders the daily report as an A4 document. Core fonts are
// cp1252, so every text goes through the translator.
func RenderDailyPDF(d *Daily, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Relatório diário "+d.Date), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr("Beach Box - Relatório diário"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		"Data: " + d.Date,
		fmt.Sprintf("Total de agendamentos: %d", d.TotalBookings),
		"Faturamento: " + brl(d.Revenue),
		"Faturamento máximo: " + brl(d.MaxRevenue),
		"Gap de faturamento: " + brl(d.RevenueGap),
		fmt.Sprintf("Capacidade restante: %d horários", d.RemainingCapacity),
	} {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, tr("Faturamento por quadra"))
	pdf.Ln(8)

	courts := make([]string, 0, len(d.RevenueByCourt))
	for name := range d.RevenueByCourt {
		courts = append(courts, name)
	}
	sort.Strings(courts)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(120, 7, "Quadra", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Faturamento", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if len(courts) == 0 {
		pdf.CellFormat(170, 7, tr("Nenhum agendamento no dia"), "1", 1, "C", false, 0, "")
	}
	for _, name := range courts {
		pdf.CellFormat(120, 7, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, brl(d.RevenueByCourt[name]), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	if len(d.BookingsByHour) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr("Agendamentos por horário"))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)

		hours := make([]int, 0, len(d.BookingsByHour))
		for h := range d.BookingsByHour {
			hours = append(hours, h)
		}
		sort.Ints(hours)
		for _, h := range hours {
			pdf.Cell(0, 6, fmt.Sprintf("%02dh: %d", h, d.BookingsByHour[h]))
			pdf.Ln(6)
		}
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, tr("Gerado em "+generatedAt.Format("2006-01-02 15:04")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dailyPDFName(d *Daily) string {
	return fmt.Sprintf("relatorio-diario-%s.pdf", d.Date)
}

func brl(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}
