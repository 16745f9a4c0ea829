package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrijs2005/debtkeeper/internal/models"
)

// JSON writes the full Snapshot in its persisted shape.
func JSON(w io.Writer, s models.Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to write json: %w", err)
	}
	return nil
}
