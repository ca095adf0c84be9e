package algebra

// declConfig collects the optional parts of a symbol declaration.
type declConfig struct {
	domain         []IndexSet
	description    string
	hasDescription bool
	singleton      bool
	forwarding     bool
	records        any
	hasRecords     bool
}

// Option configures a symbol declaration.
type Option func(*declConfig)

// Domain declares the ordered index domain. Omitting it declares a scalar
// for data symbols and a universe-domained set for sets.
func Domain(dom ...IndexSet) Option {
	return func(c *declConfig) { c.domain = dom }
}

// Description attaches the quoted description emitted with the declaration.
func Description(text string) Option {
	return func(c *declConfig) {
		c.description = text
		c.hasDescription = true
	}
}

// Singleton marks a set as holding at most one element.
func Singleton() Option {
	return func(c *declConfig) { c.singleton = true }
}

// DomainForwarding lets records assigned to the symbol grow its domain sets.
func DomainForwarding() Option {
	return func(c *declConfig) { c.forwarding = true }
}

// Records binds initial records to the declaration. The accepted host shapes
// are those of the symbol kind's SetRecords method.
func Records(data any) Option {
	return func(c *declConfig) {
		c.records = data
		c.hasRecords = true
	}
}

func buildConfig(opts []Option) declConfig {
	var cfg declConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// sameDomain reports whether two declared domains agree entry by entry.
func sameDomain(a, b []IndexSet) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
