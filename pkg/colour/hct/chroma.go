package hct

const (
	probeChroma        = 200
	maxExactChromaStep = 2000
)

// MaxChroma approximates the highest chroma available at a hue and tone by
// solving for an unreachable chroma and measuring what came back.
func MaxChroma(hue, tone float64) float64 {
	return FromRGBA(SolveToRGBA(hue, probeChroma, tone)).Chroma
}

// ExactMaxChroma refines MaxChroma by stepping chroma up by precision until
// the solved device colour stops changing. Smaller precision costs more
// solves. A non-positive precision returns the approximation.
func ExactMaxChroma(hue, tone, precision float64) float64 {
	chroma := MaxChroma(hue, tone)
	if precision <= 0 {
		return chroma
	}
	current := SolveToRGBA(hue, chroma, tone)
	for range maxExactChromaStep {
		next := SolveToRGBA(hue, chroma+precision, tone)
		if next == current {
			break
		}
		chroma += precision
		current = next
	}
	return FromRGBA(current).Chroma
}
