package fit

// Config holds solver settings.
type Config struct {
	// MaxEvaluations bounds residual evaluations made by the solver. Zero
	// selects 200·(dim+1).
	MaxEvaluations int
	// Tau scales the initial damping μ₀ = τ·max(diag JᵀJ).
	Tau float64
	// GradientTol stops the solver when ‖Jᵀr‖∞ falls below it.
	GradientTol float64
	// StepTol stops the solver when the relative step falls below it.
	StepTol float64
	// ObjectiveTol stops the solver when the objective falls below it.
	ObjectiveTol float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	return Config{
		Tau:          1e-3,
		GradientTol:  1e-12,
		StepTol:      1e-12,
		ObjectiveTol: 1e-24,
	}
}

// WithMaxEvaluations sets the evaluation budget.
func WithMaxEvaluations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxEvaluations = n
		}
	}
}

// WithDamping sets the initial damping factor τ.
func WithDamping(tau float64) Option {
	return func(cfg *Config) {
		if tau > 0 {
			cfg.Tau = tau
		}
	}
}

// WithTolerances sets the gradient and relative step stopping tolerances.
func WithTolerances(gradient, step float64) Option {
	return func(cfg *Config) {
		if gradient > 0 {
			cfg.GradientTol = gradient
		}

		if step > 0 {
			cfg.StepTol = step
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

func (c Config) budget(dim int) int {
	if c.MaxEvaluations > 0 {
		return c.MaxEvaluations
	}

	return 200 * (dim + 1)
}
