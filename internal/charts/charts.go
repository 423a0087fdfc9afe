package charts

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNotEnoughData возвращается, когда у двух серий меньше двух общих дат.
var ErrNotEnoughData = errors.New("charts: not enough common dates")

const (
	canvasWidth  = 900
	canvasHeight = 500

	// minSpan не дает шкале схлопнуться, когда обе серии почти плоские.
	minSpan      = 0.01
	scalePadding = 0.2
)

// ChartGenerator генерирует графики сравнения валют
type ChartGenerator struct{}

// NewChartGenerator создает новый генератор графиков
func NewChartGenerator() *ChartGenerator {
	return &ChartGenerator{}
}

// comparison — нормализованные серии на общих датах и общая шкала.
type comparison struct {
	dates  []time.Time
	first  []float64 // процент изменения к первой общей дате
	second []float64
	minY   float64
	maxY   float64
}

// buildComparison пересекает даты двух серий и нормализует каждую
// к проценту изменения относительно значения на первой общей дате.
func buildComparison(seriesA, seriesB map[time.Time]float64) (*comparison, error) {
	dates := make([]time.Time, 0, len(seriesA))
	for date := range seriesA {
		if _, ok := seriesB[date]; ok {
			dates = append(dates, date)
		}
	}
	if len(dates) < 2 {
		return nil, ErrNotEnoughData
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	startA := seriesA[dates[0]]
	startB := seriesB[dates[0]]
	if startA == 0 || startB == 0 {
		return nil, ErrNotEnoughData
	}

	cmp := &comparison{
		dates:  dates,
		first:  make([]float64, len(dates)),
		second: make([]float64, len(dates)),
		minY:   math.Inf(1),
		maxY:   math.Inf(-1),
	}

	for i, date := range dates {
		cmp.first[i] = (seriesA[date]/startA - 1) * 100
		cmp.second[i] = (seriesB[date]/startB - 1) * 100

		cmp.minY = math.Min(cmp.minY, math.Min(cmp.first[i], cmp.second[i]))
		cmp.maxY = math.Max(cmp.maxY, math.Max(cmp.first[i], cmp.second[i]))
	}

	if cmp.maxY-cmp.minY < minSpan {
		cmp.maxY = cmp.minY + minSpan
	}
	cmp.minY -= scalePadding
	cmp.maxY += scalePadding

	return cmp, nil
}

// GenerateComparisonChart строит график динамики двух валют: обе серии
// нормализуются к проценту изменения от первой общей даты и рисуются
// в одной системе координат.
func (g *ChartGenerator) GenerateComparisonChart(seriesA, seriesB map[time.Time]float64, labelA, labelB string) ([]byte, error) {
	cmp, err := buildComparison(seriesA, seriesB)
	if err != nil {
		return nil, err
	}

	// Точки расставляются равномерно по индексу даты, а не по времени
	xValues := make([]float64, len(cmp.dates))
	ticks := make([]chart.Tick, len(cmp.dates))
	for i, date := range cmp.dates {
		xValues[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: date.Format("02.01")}
	}

	graph := chart.Chart{
		Width:  canvasWidth,
		Height: canvasHeight,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0, Max: float64(len(cmp.dates) - 1)},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: cmp.minY, Max: cmp.maxY},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.2f%%", v.(float64))
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    seriesLegend(labelA, cmp.first),
				XValues: xValues,
				YValues: cmp.first,
				Style: chart.Style{
					StrokeColor: chart.ColorRed,
					StrokeWidth: 3,
				},
			},
			chart.ContinuousSeries{
				Name:    seriesLegend(labelB, cmp.second),
				XValues: xValues,
				YValues: cmp.second,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 3,
				},
			},
			pointLabels(xValues, cmp.first, chart.ColorRed),
			pointLabels(xValues, cmp.second, chart.ColorBlue),
		},
	}

	// Добавляем легенду
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render comparison chart: %w", err)
	}

	return buffer.Bytes(), nil
}

// pointLabels подписывает процент изменения у каждой точки серии.
func pointLabels(xValues, yValues []float64, color drawing.Color) chart.AnnotationSeries {
	annotations := make([]chart.Value2, len(xValues))
	for i := range xValues {
		annotations[i] = chart.Value2{
			XValue: xValues[i],
			YValue: yValues[i],
			Label:  formatPercent(yValues[i]),
		}
	}

	return chart.AnnotationSeries{
		Annotations: annotations,
		Style: chart.Style{
			FontSize:    10,
			FontColor:   color,
			StrokeColor: color,
			FillColor:   chart.ColorWhite,
		},
	}
}

// seriesLegend — подпись серии с ее диапазоном изменений.
func seriesLegend(label string, values []float64) string {
	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return fmt.Sprintf("%s: %s–%s", label, formatPercent(minV), formatPercent(maxV))
}

// formatPercent форматирует процент в виде +1.25%, -0.4% или 0%.
func formatPercent(v float64) string {
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		return "0%"
	}
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if rounded > 0 {
		s = "+" + s
	}
	return s + "%"
}
