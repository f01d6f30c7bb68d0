// Package metrics provides the pure numeric helpers shared by the pattern
// detectors: swing point detection, oscillators, volatility measures,
// Fibonacci scoring and wedge regression. All functions are stateless and
// deterministic; degenerate inputs yield neutral results instead of panics.
package metrics

// LocalMinima returns the indices i where series[i] is the strict minimum of
// series[i-window, i+window] inclusive. The first and last window points can
// never qualify. Indices are returned in ascending order.
func LocalMinima(series []float64, window int) []int {
	var out []int

	if window <= 0 || len(series) < 2*window+1 {
		return out
	}

	for i := window; i < len(series)-window; i++ {
		isMin := true

		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}

			if series[j] <= series[i] {
				isMin = false

				break
			}
		}

		if isMin {
			out = append(out, i)
		}
	}

	return out
}

// LocalMaxima returns the indices i where series[i] is the strict maximum of
// series[i-window, i+window] inclusive. Edges are never candidates.
func LocalMaxima(series []float64, window int) []int {
	var out []int

	if window <= 0 || len(series) < 2*window+1 {
		return out
	}

	for i := window; i < len(series)-window; i++ {
		isMax := true

		for j := i - window; j <= i+window; j++ {
			if j == i {
				continue
			}

			if series[j] >= series[i] {
				isMax = false

				break
			}
		}

		if isMax {
			out = append(out, i)
		}
	}

	return out
}
