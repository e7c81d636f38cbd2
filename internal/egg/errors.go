package egg

import (
	"fmt"

	"github.com/suPer8Hu/animai/internal/common"
)

var (
	ErrEmptyMessage   = fmt.Errorf("message is required: %w", common.ErrValidation)
	ErrEggNotFound    = fmt.Errorf("egg %w", common.ErrNotFound)
	ErrNotEggOwner    = fmt.Errorf("egg belongs to another user: %w", common.ErrForbidden)
	ErrAlreadyHatched = fmt.Errorf("egg already hatched: %w", common.ErrConflict)
)
