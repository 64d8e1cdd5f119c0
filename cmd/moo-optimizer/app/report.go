/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package app

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/gosuri/uitable"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/analysis"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/problems/weldedbeam"
)

// maxPrintedVariables limits the decision vector preview of large problems.
const maxPrintedVariables = 4

// PrintReport writes the final front as a table followed by the designs
// recommended by the weights and by the knee point. Nil weights weigh every
// objective equally.
func PrintReport(out io.Writer, problem framework.Problem, front []*algorithms.NSGAIISolution, weights []float64) error {
	if len(front) == 0 {
		return fmt.Errorf("the final front of %s is empty", problem.Name())
	}

	sorted := make([]*algorithms.NSGAIISolution, len(front))
	copy(sorted, front)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Objectives[0] < sorted[j].Objectives[0]
	})

	var (
		table  *uitable.Table
		points []framework.ObjectiveSpacePoint
		labels []string
	)
	if wb, ok := problem.(*weldedbeam.WeldedBeam); ok {
		table, points, labels = weldedBeamTable(wb, sorted)
	} else {
		table, points, labels = objectiveTable(sorted)
	}

	fmt.Fprintf(out, "Pareto front of %s (%d designs)\n", problem.Name(), len(sorted))
	fmt.Fprintln(out, table)

	if weights == nil {
		weights = make([]float64, len(points[0]))
		for i := range weights {
			weights[i] = 1
		}
	}
	ranked, err := analysis.RankByWeights(points, weights)
	if err != nil {
		return fmt.Errorf("ranking the front: %w", err)
	}
	knee, err := analysis.KneePoint(points)
	if err != nil {
		return fmt.Errorf("finding the knee point: %w", err)
	}
	stats, err := analysis.Describe(points)
	if err != nil {
		return err
	}

	summary := uitable.New()
	summary.MaxColWidth = 40
	summary.AddRow("OBJECTIVE", "MIN", "MAX", "MEAN", "STDDEV")
	for k, s := range stats {
		summary.AddRow(labels[k], format(s.Min), format(s.Max), format(s.Mean), format(s.StdDev))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, summary)

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Recommended by weights %v: design %d\n", weights, ranked[0].Index+1)
	fmt.Fprintf(out, "Knee point: design %d\n", knee+1)
	return nil
}

// weldedBeamTable shows the dimensions and raw engineering quantities of each
// design. The decision points are the raw cost and deflection.
func weldedBeamTable(wb *weldedbeam.WeldedBeam, front []*algorithms.NSGAIISolution) (*uitable.Table, []framework.ObjectiveSpacePoint, []string) {
	table := uitable.New()
	table.MaxColWidth = 40
	table.Wrap = false
	table.AddRow("#", "H", "L", "T", "B", "COST", "DEFLECTION", "FEASIBLE", "VIOLATIONS")

	points := make([]framework.ObjectiveSpacePoint, len(front))
	for i, sol := range front {
		d := wb.Analyze(sol.Variables)
		violated := ""
		for j, v := range d.Violations {
			if j > 0 {
				violated += ", "
			}
			violated += v.Name
		}
		table.AddRow(i+1, format(d.WeldThickness), format(d.WeldLength), format(d.BeamHeight), format(d.BeamWidth),
			format(d.Cost), format(d.Deflection), d.Feasible(), violated)
		points[i] = framework.ObjectiveSpacePoint{d.Cost, d.Deflection}
	}
	return table, points, []string{"cost", "deflection"}
}

func objectiveTable(front []*algorithms.NSGAIISolution) (*uitable.Table, []framework.ObjectiveSpacePoint, []string) {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = false

	m := len(front[0].Objectives)
	labels := make([]string, m)
	header := []interface{}{"#"}
	for k := range labels {
		labels[k] = "f" + strconv.Itoa(k+1)
		header = append(header, "F"+strconv.Itoa(k+1))
	}
	header = append(header, "X")
	table.AddRow(header...)

	points := make([]framework.ObjectiveSpacePoint, len(front))
	for i, sol := range front {
		row := []interface{}{i + 1}
		for _, v := range sol.Objectives {
			row = append(row, format(v))
		}
		row = append(row, formatVariables(sol.Variables))
		table.AddRow(row...)
		// decisions are taken on the minimization form
		points[i] = sol.Value.Clone()
	}
	return table, points, labels
}

func format(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatVariables(x []float64) string {
	s := "["
	for i, v := range x {
		if i == maxPrintedVariables {
			s += fmt.Sprintf(" ... %d more", len(x)-maxPrintedVariables)
			break
		}
		if i > 0 {
			s += " "
		}
		s += format(v)
	}
	return s + "]"
}
