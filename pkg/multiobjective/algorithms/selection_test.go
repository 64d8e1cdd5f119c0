package algorithms

import (
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/rand"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/framework"
)

func ranked(rank int, distance float64) *NSGAIISolution {
	return &NSGAIISolution{Rank: rank, Distance: distance}
}

func TestCrowdedCompare(t *testing.T) {
	testCases := []struct {
		name string
		a, b *NSGAIISolution
		want int
	}{
		{name: "lower rank wins", a: ranked(0, 0), b: ranked(1, math.Inf(1)), want: -1},
		{name: "higher rank loses", a: ranked(2, 5), b: ranked(1, 0), want: 1},
		{name: "larger distance wins on equal rank", a: ranked(1, 2), b: ranked(1, 1), want: -1},
		{name: "smaller distance loses on equal rank", a: ranked(1, 0.5), b: ranked(1, math.Inf(1)), want: 1},
		{name: "tie", a: ranked(3, 1.5), b: ranked(3, 1.5), want: 0},
		{name: "tie on infinite distance", a: ranked(0, math.Inf(1)), b: ranked(0, math.Inf(1)), want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CrowdedCompare(tc.a, tc.b); got != tc.want {
				t.Errorf("CrowdedCompare() = %d, want %d", got, tc.want)
			}
			if got := CrowdedCompare(tc.b, tc.a); got != -tc.want {
				t.Errorf("CrowdedCompare() reversed = %d, want %d", got, -tc.want)
			}
		})
	}
}

func TestTournamentSelectDCD(t *testing.T) {
	const n = 20
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 100; trial++ {
		population := make([]*NSGAIISolution, n)
		for i := range population {
			population[i] = ranked(i, 0)
		}

		chosen, err := TournamentSelectDCD(rng, population, n)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(chosen) != n {
			t.Fatalf("got %d individuals, want %d", len(chosen), n)
		}

		counts := make(map[int]int)
		for _, sol := range chosen {
			counts[sol.Rank]++
		}
		if counts[0] != 2 {
			t.Errorf("best individual selected %d times, want 2", counts[0])
		}
		if counts[n-1] != 0 {
			t.Errorf("worst individual selected %d times, want 0", counts[n-1])
		}
		for rank, c := range counts {
			if c > 2 {
				t.Errorf("individual of rank %d selected %d times, at most 2 tournaments are possible", rank, c)
			}
		}
	}
}

func TestTournamentSelectDCDSubset(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	population := make([]*NSGAIISolution, 10)
	for i := range population {
		population[i] = ranked(0, float64(i))
	}

	chosen, err := TournamentSelectDCD(rng, population, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chosen) != 4 {
		t.Fatalf("got %d individuals, want 4", len(chosen))
	}

	chosen, err = TournamentSelectDCD(rng, population, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chosen) != 0 {
		t.Fatalf("got %d individuals, want none", len(chosen))
	}
}

func TestTournamentSelectDCDErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	even := []*NSGAIISolution{ranked(0, 0), ranked(1, 0), ranked(2, 0), ranked(3, 0)}
	odd := even[:3]

	testCases := []struct {
		name       string
		population []*NSGAIISolution
		k          int
	}{
		{name: "odd population", population: odd, k: 2},
		{name: "odd k", population: even, k: 3},
		{name: "k larger than population", population: even, k: 6},
		{name: "negative k", population: even, k: -2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := TournamentSelectDCD(rng, tc.population, tc.k); err == nil {
				t.Errorf("expected an error selecting %d of %d", tc.k, len(tc.population))
			}
		})
	}
}

// ids returns the identifiers evaluated() stores in the first variable.
func ids(population []*NSGAIISolution) []int {
	res := make([]int, len(population))
	for i, sol := range population {
		res[i] = int(sol.Variables[0])
	}
	sort.Ints(res)
	return res
}

func TestSelectNextGeneration(t *testing.T) {
	points := []framework.ObjectiveSpacePoint{
		{0, 1},     // 0: front 0
		{1, 0},     // 1: front 0
		{1, 2},     // 2: front 1
		{1.5, 1.5}, // 3: front 1
		{2, 1},     // 4: front 1
		{3, 3},     // 5: front 2
	}

	testCases := []struct {
		name string
		n    int
		want []int
	}{
		{name: "first front exactly", n: 2, want: []int{0, 1}},
		{name: "boundary front keeps its extremes", n: 4, want: []int{0, 1, 2, 4}},
		{name: "two full fronts", n: 5, want: []int{0, 1, 2, 3, 4}},
		{name: "everything", n: 6, want: []int{0, 1, 2, 3, 4, 5}},
		{name: "more than available", n: 8, want: []int{0, 1, 2, 3, 4, 5}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := SelectNextGeneration(evaluated(points...), tc.n)
			if diff := cmp.Diff(tc.want, ids(got)); diff != "" {
				t.Errorf("unexpected selection (-want +got):\n%s", diff)
			}
			for _, sol := range got {
				if math.IsNaN(sol.Distance) {
					t.Errorf("individual %v has no crowding distance", sol.Variables)
				}
			}
		})
	}
}

func TestSelectNextGenerationTruncatesFirstFront(t *testing.T) {
	// All five points are mutually nondominated; only the extremes have
	// infinite distance.
	population := evaluated(
		framework.ObjectiveSpacePoint{0, 4},
		framework.ObjectiveSpacePoint{1, 3},
		framework.ObjectiveSpacePoint{2, 2},
		framework.ObjectiveSpacePoint{3, 1},
		framework.ObjectiveSpacePoint{4, 0},
	)

	got := SelectNextGeneration(population, 3)
	if len(got) != 3 {
		t.Fatalf("got %d individuals, want 3", len(got))
	}
	selected := ids(got)
	if selected[0] != 0 || selected[2] != 4 {
		t.Errorf("extremes of the front were not kept: %v", selected)
	}
	for _, sol := range got {
		if sol.Rank != 0 {
			t.Errorf("individual %v has rank %d, want 0", sol.Variables, sol.Rank)
		}
	}
}

func TestSelectNextGenerationRandomPopulations(t *testing.T) {
	rng := rand.New(rand.NewSource(14))
	for trial := 0; trial < 50; trial++ {
		combined := randomPopulation(rng, 40, 2+rng.Intn(2))
		got := SelectNextGeneration(combined, 20)
		if len(got) != 20 {
			t.Fatalf("got %d individuals, want 20", len(got))
		}

		// Nothing left behind may have a better rank than something selected,
		// except within the truncated front.
		worstSelected := 0
		for _, sol := range got {
			worstSelected = max(worstSelected, sol.Rank)
		}
		inSelection := make(map[*NSGAIISolution]bool, len(got))
		for _, sol := range got {
			inSelection[sol] = true
		}
		for _, sol := range combined {
			if !inSelection[sol] && sol.Rank < worstSelected {
				t.Fatalf("individual of rank %d dropped while rank %d was selected", sol.Rank, worstSelected)
			}
		}
	}
}
