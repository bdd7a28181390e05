package organization

// FitPolicy scores an organization's structure.
type FitPolicy interface {
	// Fit returns an efficiency within [0, 1] for the current members.
	Fit(org *Org, cfg *Config) float64
}

// SizeFit peaks at the optimal size and falls off linearly on both sides,
// vanishing at twice the optimum.
type SizeFit struct{}

// Fit returns the size fit score.
func (SizeFit) Fit(org *Org, cfg *Config) float64 {
	size := float64(len(org.Members))
	optimum := float64(cfg.OptimalSize)
	gap := size - optimum
	if gap < 0 {
		gap = -gap
	}
	score := 1 - gap/optimum
	if score < 0 {
		return 0
	}
	return score
}

// RoleCoverageFit scores the fraction of required roles held by at least
// one member, size is irrelevant.
type RoleCoverageFit struct{}

// Fit returns the covered fraction of the required role set.
func (RoleCoverageFit) Fit(org *Org, cfg *Config) float64 {
	held := make(map[Role]bool, len(org.Members))
	for _, role := range org.Members {
		held[role] = true
	}
	var covered int
	for _, role := range cfg.RequiredRoles {
		if held[role] {
			covered++
		}
	}
	return float64(covered) / float64(len(cfg.RequiredRoles))
}

// BlendedFit averages size fit and role coverage, a balanced structure
// needs both the right headcount and the right roles.
type BlendedFit struct{}

// Fit returns the mean of the size and coverage scores.
func (BlendedFit) Fit(org *Org, cfg *Config) float64 {
	return (SizeFit{}.Fit(org, cfg) + RoleCoverageFit{}.Fit(org, cfg)) / 2
}
