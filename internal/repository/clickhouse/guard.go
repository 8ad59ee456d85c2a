package clickhouse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/haikalvidya/lmnr/internal/domain"
)

// maxScoreNameLength caps metric names far above anything a real evaluator
// emits while still bounding what ends up in query text.
const maxScoreNameLength = 256

var scoreNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// validateScoreName rejects metric names that are unsafe to place in a
// query. Analytical queries here are templated text: values pass through the
// driver's client-side parameter substitution, so quotes, statement
// separators and comment markers must never survive to that point. UUIDs and
// numeric bounds are structurally safe and are not routed through this
// check.
func validateScoreName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: score name is empty", domain.ErrInvalidInput)
	}
	if len(name) > maxScoreNameLength {
		return fmt.Errorf("%w: score name exceeds %d characters", domain.ErrInvalidInput, maxScoreNameLength)
	}
	// "--" is two allowed characters but still a comment marker.
	if strings.Contains(name, "--") || !scoreNamePattern.MatchString(name) {
		return fmt.Errorf("%w: score name %q contains disallowed characters", domain.ErrInvalidInput, name)
	}
	return nil
}
