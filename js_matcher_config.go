package userstore

type jsMatcherConfig struct {
	cache ProgramCache
}

// JSMatcherOption configures the JS matcher.
type JSMatcherOption func(*jsMatcherConfig)

// JSWithProgramCache applies a ProgramCache to the JS matcher.
func JSWithProgramCache(cache ProgramCache) JSMatcherOption {
	return func(cfg *jsMatcherConfig) {
		cfg.cache = cache
	}
}

func applyJSMatcherOptions(opts []JSMatcherOption) jsMatcherConfig {
	cfg := jsMatcherConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
