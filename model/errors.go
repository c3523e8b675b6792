package model

import "fmt"

// UnsupportedConstructError reports a document element that a writer has no
// mapping for in its target format.
type UnsupportedConstructError struct {
	Construct string
	Format    string
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %s for %s output", e.Construct, e.Format)
}
