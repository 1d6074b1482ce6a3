// Package catalog holds the compliance rule catalog. Rules are versioned in
// rules.yaml, seeded into the database once and treated as read-only at
// runtime.
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"northstar-student/internal/domain"
	"northstar-student/internal/repository"
)

//go:embed rules.yaml
var rulesYAML []byte

const maxIDLength = 50

type ruleFile struct {
	Version int              `yaml:"version"`
	Rules   []ruleDefinition `yaml:"rules"`
}

type ruleDefinition struct {
	Title        string  `yaml:"title"`
	Description  string  `yaml:"description"`
	Category     string  `yaml:"category"`
	DeadlineType string  `yaml:"deadline_type"`
	DeadlineDays *int    `yaml:"deadline_days"`
	Priority     int     `yaml:"priority"`
	HelpURL      *string `yaml:"help_url"`
	Inactive     bool    `yaml:"inactive"`
}

// Load parses the embedded catalog.
func Load() ([]domain.ComplianceRule, error) {
	return Parse(rulesYAML)
}

// Parse decodes a catalog document. Rule ids are derived from titles, so
// renaming a rule creates a new one.
func Parse(data []byte) ([]domain.ComplianceRule, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rule catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Rules))
	rules := make([]domain.ComplianceRule, 0, len(file.Rules))
	for i, def := range file.Rules {
		if def.Title == "" {
			return nil, fmt.Errorf("rule %d: title is required", i)
		}
		category := domain.ComplianceCategory(def.Category)
		if !category.IsValid() {
			return nil, fmt.Errorf("rule %q: unknown category %q", def.Title, def.Category)
		}
		deadlineType := domain.DeadlineType(def.DeadlineType)
		switch deadlineType {
		case domain.DeadlineOneTime, domain.DeadlineFixedDate, domain.DeadlineRelativeToPermit, domain.DeadlineRecurring:
		default:
			return nil, fmt.Errorf("rule %q: unknown deadline type %q", def.Title, def.DeadlineType)
		}

		id := Slug(def.Title)
		if seen[id] {
			return nil, fmt.Errorf("rule %q: duplicate id %q", def.Title, id)
		}
		seen[id] = true

		rules = append(rules, domain.ComplianceRule{
			ID:           id,
			Title:        def.Title,
			Description:  def.Description,
			Category:     category,
			DeadlineType: deadlineType,
			DeadlineDays: def.DeadlineDays,
			Priority:     def.Priority,
			IsActive:     !def.Inactive,
			HelpURL:      def.HelpURL,
		})
	}
	return rules, nil
}

// Slug lowercases title, replaces every character outside [a-z0-9] with a
// dash and truncates to 50 characters.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if b.Len() >= maxIDLength {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Seed upserts every catalog rule. Running it twice is harmless.
func Seed(ctx context.Context, repo repository.RuleRepository, rules []domain.ComplianceRule) (int, error) {
	for i := range rules {
		if err := repo.Upsert(ctx, &rules[i]); err != nil {
			return i, fmt.Errorf("failed to seed rule %s: %w", rules[i].ID, err)
		}
	}
	return len(rules), nil
}
