package models

import "strings"

// DefaultContentType is used for template responses when a rule names none
const DefaultContentType = "text/html; charset=UTF-8"

// RouteRule binds an exact (method, path) pair to a user template
type RouteRule struct {
	Method      string `json:"method" yaml:"method"`
	Route       string `json:"route" yaml:"route"`
	Template    string `json:"template" yaml:"template"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
}

// RouteTable maps a route path to its rule
type RouteTable map[string]RouteRule

// ResponseContentType returns the rule's content type or DefaultContentType
func (r *RouteRule) ResponseContentType() string {
	if strings.TrimSpace(r.ContentType) == "" {
		return DefaultContentType
	}
	return r.ContentType
}

// MatchesMethod compares the rule method with an inbound method, ignoring case
func (r *RouteRule) MatchesMethod(method string) bool {
	return strings.EqualFold(strings.TrimSpace(r.Method), strings.TrimSpace(method))
}

// Validate validates the rule as read from a route definition file
func (r *RouteRule) Validate() []string {
	var errors []string

	if strings.TrimSpace(r.Method) == "" {
		errors = append(errors, "method is required")
	}

	if r.Route == "" {
		errors = append(errors, "route is required")
	} else if !strings.HasPrefix(r.Route, "/") {
		errors = append(errors, "route must start with /")
	} else if strings.ContainsAny(r.Route, "?#") {
		errors = append(errors, "route must be a plain path without query or fragment")
	}

	if strings.TrimSpace(r.Template) == "" {
		errors = append(errors, "template is required")
	}

	return errors
}

// NewRouteTable builds a table from rules in file order; a later rule for the
// same route replaces an earlier one. Methods are stored trimmed and uppercased.
func NewRouteTable(rules []RouteRule) RouteTable {
	table := make(RouteTable, len(rules))
	for _, rule := range rules {
		rule.Method = strings.ToUpper(strings.TrimSpace(rule.Method))
		table[rule.Route] = rule
	}
	return table
}

// Lookup returns the rule registered for path
func (t RouteTable) Lookup(path string) (RouteRule, bool) {
	rule, ok := t[path]
	return rule, ok
}
