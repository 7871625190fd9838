// Package screen reconciles and filters the enriched equity table
package screen

import (
	"github.com/kabulab/rankscreen/internal/common"
	"github.com/kabulab/rankscreen/internal/interfaces"
)

// Service implements ScreenService as pure computations over in-memory
// tables; it owns no I/O.
type Service struct {
	logger *common.Logger
}

// NewService creates a new screen service
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Ensure Service implements ScreenService
var _ interfaces.ScreenService = (*Service)(nil)
