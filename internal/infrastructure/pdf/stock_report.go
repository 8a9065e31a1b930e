// Package pdf implementa el relatório de estoque en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + nombre de la app  │  Fecha de generación   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Nome | Descrição | Preço | Qtd | Valor          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Produtos / Unidades / Valor em estoque             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/entity"
)

var _ usecase.StockReportGenerator = (*StockReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportGenerator implementa usecase.StockReportGenerator usando Maroto v2.
// Los números se formatean en pt-BR (1.234,56).
type StockReportGenerator struct {
	appName string
	printer *message.Printer
}

// NewStockReportGenerator construye el generador. appName aparece en el encabezado y como autor.
func NewStockReportGenerator(appName string) *StockReportGenerator {
	return &StockReportGenerator{
		appName: appName,
		printer: message.NewPrinter(language.BrazilianPortuguese),
	}
}

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(
	_ context.Context,
	records []*entity.StockRecord,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estoque", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(records) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Nenhum produto cadastrado.", props.Text{Size: 8, Align: align.Center, Top: 2, Color: colorGray}),
		)))
	}
	for _, r := range records {
		m.AddRows(g.detailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(records))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *StockReportGenerator) headerRow(generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("RELATÓRIO DE ESTOQUE", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(g.appName, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("Gerado em: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("ID", 1, align.Center),
		h("Nome", 3, align.Left),
		h("Descrição", 3, align.Left),
		h("Preço", 2, align.Right),
		h("Qtd", 1, align.Right),
		h("Valor", 2, align.Right),
	)
}

// detailRow: una fila por producto. Cantidad cero se resalta.
func (g *StockReportGenerator) detailRow(r *entity.StockRecord) core.Row {
	qtyProps := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if r.Quantity == 0 {
		qtyProps.Color = colorAlert
		qtyProps.Style = fontstyle.Bold
	}
	return row.New(7).Add(
		col.New(1).Add(text.New(strconv.FormatInt(r.ID, 10), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(r.Name, props.Text{Size: 8, Top: 1, Left: 1})),
		col.New(3).Add(text.New(r.Description, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
		col.New(2).Add(text.New(g.money(r.Price), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(1).Add(text.New(g.printer.Sprintf("%d", r.Quantity), qtyProps)),
		col.New(2).Add(text.New(g.money(stockValue(r)), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

const totalsLineHeight = 6.0

// totalLine una línea del bloque de totales; Top la separa de las anteriores dentro de la fila.
type totalLine struct {
	Label string
	Value string
	Top   float64
}

func (g *StockReportGenerator) totalsLines(records []*entity.StockRecord) []totalLine {
	var units int64
	total := decimal.Zero
	for _, r := range records {
		units += r.Quantity
		total = total.Add(stockValue(r))
	}
	lines := []totalLine{
		{Label: "Produtos:", Value: g.printer.Sprintf("%d", len(records))},
		{Label: "Unidades:", Value: g.printer.Sprintf("%d", units)},
		{Label: "Valor em estoque:", Value: g.money(total)},
	}
	for i := range lines {
		lines[i].Top = float64(i) * totalsLineHeight
	}
	return lines
}

func (g *StockReportGenerator) totalsRow(records []*entity.StockRecord) core.Row {
	labels := col.New(3)
	values := col.New(3)
	for _, l := range g.totalsLines(records) {
		labels.Add(text.New(l.Label, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: l.Top}))
		values.Add(text.New(l.Value, props.Text{Size: 9, Align: align.Right, Right: 1, Top: l.Top}))
	}
	return row.New(20).Add(col.New(6), labels, values)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stockValue(r *entity.StockRecord) decimal.Decimal {
	return r.Price.Mul(decimal.NewFromInt(r.Quantity))
}

// money formatea en reales con separadores pt-BR. Ej: 2500.5 → "R$ 2.500,50"
func (g *StockReportGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("R$ %.2f", f)
}
