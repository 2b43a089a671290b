package load

type Option func(*loader)

// AllowUnknown makes names missing from the schema load as element nodes
// instead of failing.
func AllowUnknown(v bool) Option {
	return func(l *loader) { l.allowUnknown = v }
}
