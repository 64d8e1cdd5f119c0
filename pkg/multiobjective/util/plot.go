package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

// trueFrontSamples is the number of points requested from Problem.TrueParetoFront.
const trueFrontSamples = 500

// PlotResults creates a scatter plot comparing the true Pareto front of the given Problem
// with the final front found by the algorithm. Problems without a known front only get
// the found points. Only two objectives can be plotted.
func PlotResults(results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string, outputPath ...string) error {
	if len(results) == 0 {
		return fmt.Errorf("results are empty for %s", problem.Name())
	}

	if len(results[0]) != 2 {
		return fmt.Errorf("can only plot 2D for %s, got %d objectives", problem.Name(), len(results[0]))
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("%s Results for %s", algorithmName, problem.Name()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:      "f1(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name:      "f2(x)",
			SplitLine: &opts.SplitLine{Show: opts.Bool(true)},
		}))

	if trueParetoFront := problem.TrueParetoFront(trueFrontSamples); len(trueParetoFront) > 0 {
		trueX := make([]opts.ScatterData, len(trueParetoFront))
		for i, p := range trueParetoFront {
			trueX[i] = opts.ScatterData{
				Value:      []float64(p),
				Symbol:     "circle",
				SymbolSize: 3,
			}
		}
		scatter.AddSeries("True Pareto Front", trueX)
	}

	foundX := make([]opts.ScatterData, len(results))
	for i, res := range results {
		foundX[i] = opts.ScatterData{
			Value:      []float64{res[0], res[1]},
			Symbol:     "triangle",
			SymbolSize: 8,
		}
	}

	scatter.AddSeries(fmt.Sprintf("%s Solutions", algorithmName), foundX).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithEmphasisOpts(opts.Emphasis{}),
		)

	filename := fmt.Sprintf("%s_%s_results.html", problem.Name(), algorithmName)
	if len(outputPath) > 0 && outputPath[0] != "" {
		filename = outputPath[0]
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return scatter.Render(f)
}

// PlotConvergence renders the hypervolume and front size recorded by h as a
// line chart, one point per generation.
func PlotConvergence(h *History, title, outputPath string) error {
	records := h.Records()
	if len(records) == 0 {
		return fmt.Errorf("no generations recorded for %s", title)
	}

	generations := make([]int, len(records))
	hypervolume := make([]opts.LineData, len(records))
	frontSize := make([]opts.LineData, len(records))
	for i, r := range records {
		generations[i] = r.Generation
		hypervolume[i] = opts.LineData{Value: r.Hypervolume}
		frontSize[i] = opts.LineData{Value: r.FrontSize, YAxisIndex: 1}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "hypervolume"}),
	)
	line.ExtendYAxis(opts.YAxis{Name: "front size"})

	line.SetXAxis(generations).
		AddSeries("Hypervolume", hypervolume).
		AddSeries("Front size", frontSize)

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return line.Render(f)
}
