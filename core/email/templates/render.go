package templates

import (
	"context"
	"fmt"
	"strings"

	"github.com/a-h/templ"
)

// Render renders a templ component to an HTML string.
func Render(ctx context.Context, c templ.Component) (string, error) {
	if c == nil {
		return "", nil
	}
	var b strings.Builder
	if err := c.Render(ctx, &b); err != nil {
		return "", fmt.Errorf("failed to render email component: %w", err)
	}
	return b.String(), nil
}
