package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/blogem/reqsink/models"
	"github.com/blogem/reqsink/render"
)

var ErrInvalidRoute = errors.New("invalid route")

// ParseRoutes decodes a route definition list. YAML is used for .yaml and
// .yml files, JSON otherwise.
func ParseRoutes(data []byte, filename string) ([]models.RouteRule, error) {
	var rules []models.RouteRule

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("failed to parse YAML routes: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&rules); err != nil {
			return nil, fmt.Errorf("failed to parse JSON routes: %w", err)
		}
	}

	for i := range rules {
		if problems := rules[i].Validate(); len(problems) > 0 {
			return nil, fmt.Errorf("%w #%d (%s): %s", ErrInvalidRoute, i, rules[i].Route, strings.Join(problems, ", "))
		}
	}

	return rules, nil
}

// LoadRouteTable reads the route file at path and checks every template is
// known to engine. Later rules for a route replace earlier ones.
func LoadRouteTable(path string, engine render.Engine) (models.RouteTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file: %w", err)
	}

	rules, err := ParseRoutes(data, path)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		if !engine.Has(rule.Template) {
			return nil, fmt.Errorf("%w %s: %w: %s", ErrInvalidRoute, rule.Route, render.ErrTemplateNotFound, rule.Template)
		}
	}

	return models.NewRouteTable(rules), nil
}
