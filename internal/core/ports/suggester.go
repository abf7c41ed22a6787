// internal/core/ports/suggester.go
package ports

import (
	"context"

	"github.com/ammerola/barstock/internal/core/domain"
)

// Suggester proposes a category and description for a product name.
// Failures of any kind are reported as ok == false, never as errors.
type Suggester interface {
	Suggest(ctx context.Context, productName string) (suggestion *domain.Suggestion, ok bool)
}
