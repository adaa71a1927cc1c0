//go:build !js_eval

package userstore

// NewJSMatcher is unavailable without the js_eval build tag.
func NewJSMatcher(opts ...JSMatcherOption) Matcher {
	_ = applyJSMatcherOptions(opts)
	return nil
}

func jsMatcherAvailable() bool {
	return false
}
