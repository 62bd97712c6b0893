package registry

import "strings"

// Stability marks a tool as deprecated, experimental or about to change.
// Every call to a marked tool logs the matching notice before it runs.
type Stability struct {
	Deprecated bool
	ReplacedBy string
	RemoveIn   string

	FutureChange      bool
	ChangeIn          string
	ChangeDescription string

	Experimental bool
	StableIn     string
}

// WithDeprecated marks a tool as deprecated. Both arguments are optional.
func WithDeprecated(replacedBy, removeIn string) LocalToolOption {
	return func(c *localToolConfig) {
		c.stability.Deprecated = true
		c.stability.ReplacedBy = replacedBy
		c.stability.RemoveIn = removeIn
	}
}

// WithFutureChange announces a behavior change. Both arguments are optional.
func WithFutureChange(version, description string) LocalToolOption {
	return func(c *localToolConfig) {
		c.stability.FutureChange = true
		c.stability.ChangeIn = version
		c.stability.ChangeDescription = description
	}
}

// WithExperimental marks a tool as experimental until stableIn (optional).
func WithExperimental(stableIn string) LocalToolOption {
	return func(c *localToolConfig) {
		c.stability.Experimental = true
		c.stability.StableIn = stableIn
	}
}

// Tagged reports whether any marker is set.
func (s Stability) Tagged() bool {
	return s.Deprecated || s.FutureChange || s.Experimental
}

// Notices returns the call-time notices for a tool called name.
func (s Stability) Notices(name string) []string {
	var out []string
	if s.Deprecated {
		var b strings.Builder
		b.WriteString(name + " is deprecated")
		if s.RemoveIn != "" {
			b.WriteString(" and will be removed in version " + s.RemoveIn)
		}
		if s.ReplacedBy != "" {
			b.WriteString(". Use " + s.ReplacedBy + " instead")
		}
		b.WriteString(".")
		out = append(out, b.String())
	}
	if s.FutureChange {
		msg := name + " behavior will change"
		if s.ChangeIn != "" {
			msg += " in version " + s.ChangeIn
		}
		if s.ChangeDescription != "" {
			msg += ". " + strings.TrimSuffix(s.ChangeDescription, ".")
		}
		out = append(out, msg+".")
	}
	if s.Experimental {
		msg := name + " is experimental"
		if s.StableIn != "" {
			msg += " until version " + s.StableIn
		}
		out = append(out, msg+". API may change without warning.")
	}
	return out
}
