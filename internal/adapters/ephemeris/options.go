package ephemeris

// Option applies a configuration option to Approximate.
type Option func(*Approximate)

// WithHouseSystem selects how cusps are laid out.
func WithHouseSystem(hs HouseSystem) Option {
	return func(a *Approximate) {
		if hs.Valid() {
			a.houses = hs
		}
	}
}

// WithDefaultTimezone sets the IANA zone used when birth data carries none.
func WithDefaultTimezone(name string) Option {
	return func(a *Approximate) {
		if name != "" {
			a.defaultTZ = name
		}
	}
}
