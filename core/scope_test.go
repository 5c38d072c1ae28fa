package core

import (
	"path"
	"testing"

	"github.com/sundew-project/sundew/utils"
)

func TestScopeMatch(t *testing.T) {
	rules := ScopeRules{
		Allow: []string{"example.com", "*.example.com"},
		Deny:  []string{"admin.example.com"},
	}

	if !rules.Match("example.com") || !rules.Match("API.Example.Com") {
		t.Errorf("Error allow matching")
	}
	if rules.Match("admin.example.com") {
		t.Errorf("Error deny rule lost")
	}
	if rules.Match("example.org") {
		t.Errorf("Error unlisted host matched")
	}

	open := ScopeRules{Deny: []string{"*.bank.com"}}
	if !open.Match("anything.net") {
		t.Errorf("Error empty allow should admit")
	}
	if open.Match("login.bank.com") {
		t.Errorf("Error wildcard deny lost")
	}
}

func TestLoadScopeRules(t *testing.T) {
	file := path.Join(t.TempDir(), "scope.yaml")
	content := `allow:
  - "*.example.com"
deny:
  - "internal.example.com"
`
	if _, err := utils.WriteToFile(file, content); err != nil {
		t.Fatalf("Error writing rule file: %v", err)
	}

	rules, err := LoadScopeRules(file)
	if err != nil {
		t.Fatalf("Error loading rules: %v", err)
	}
	if len(rules.Allow) != 1 || len(rules.Deny) != 1 {
		t.Errorf("Error parsed rules: %v", rules)
	}
	if !rules.Match("a.example.com") || rules.Match("internal.example.com") {
		t.Errorf("Error loaded rules do not classify")
	}

	if _, err := LoadScopeRules(path.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Error missing file accepted")
	}
}
