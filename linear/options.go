package linear

// Option is a function that configures LinearRegression
type Option func(*LinearRegression)

// WithFitIntercept sets whether to calculate the intercept
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithCopyX sets whether to copy X before centering.
// With false, a *mat.Dense passed to Fit is centered in place.
func WithCopyX(copy bool) Option {
	return func(lr *LinearRegression) {
		lr.copyX = copy
	}
}

// WithRcond sets the cutoff ratio for small singular values.
// Singular values at or below rcond times the largest are treated as zero.
// A negative value selects machine precision times max(n_samples, n_features).
func WithRcond(rcond float64) Option {
	return func(lr *LinearRegression) {
		lr.rcond = rcond
	}
}
