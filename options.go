package typeset

// ConvertOptions holds configuration for document conversion.
type ConvertOptions struct {
	// Style overrides
	baseFontSize int    // 0 means follow the document metadata
	highlight    string // chroma style name, empty disables highlighting

	// Reading options
	strictTables bool // grid-table problems fail instead of degrading
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		baseFontSize: 0,
		highlight:    "",
		strictTables: false,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		baseFontSize: o.baseFontSize,
		highlight:    o.highlight,
		strictTables: o.strictTables,
	}
}
