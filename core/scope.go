package core

import (
	"fmt"
	"io/ioutil"
	"strings"

	"gopkg.in/yaml.v2"
)

// ScopeRules is the user-configured allow/deny rule set for active
// testing. Patterns match hosts and may start with a "*" wildcard
// ("*.example.com"). Deny rules win over allow rules and an empty allow
// list admits every host.
type ScopeRules struct {
	Allow []string `yaml:"allow"`
	Deny  []string `yaml:"deny"`
}

// Rules make a fixed rule set usable wherever a provider is expected
func (r ScopeRules) Rules() ScopeRules {
	return r
}

// Match classify a single host against the rule set
func (r ScopeRules) Match(host string) bool {
	for _, pattern := range r.Deny {
		if matchHost(pattern, host) {
			return false
		}
	}
	if len(r.Allow) == 0 {
		return true
	}
	for _, pattern := range r.Allow {
		if matchHost(pattern, host) {
			return true
		}
	}
	return false
}

// LoadScopeRules read a YAML rule file
func LoadScopeRules(path string) (ScopeRules, error) {
	var rules ScopeRules
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("reading scope rules: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parsing scope rules %v: %w", path, err)
	}
	return rules, nil
}

func matchHost(pattern, host string) bool {
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	host = strings.ToLower(host)
	if pattern == "" {
		return false
	}
	if pattern == "*" {
		return true
	}
	if strings.HasPrefix(pattern, "*") {
		return strings.HasSuffix(host, strings.TrimPrefix(pattern, "*"))
	}
	return pattern == host
}
