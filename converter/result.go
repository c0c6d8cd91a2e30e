package converter

// Result holds the output of a conversion.
type Result struct {
	AsciiDoc string    `json:"asciidoc"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// WarningType categorizes conversion warnings.
type WarningType string

const (
	WarningUnknownElement      WarningType = "unknown_element"
	WarningDroppedFeature      WarningType = "dropped_feature"
	WarningHandlerFallback     WarningType = "handler_fallback"
	WarningMissingAttribute    WarningType = "missing_attribute"
	WarningUnresolvedReference WarningType = "unresolved_reference"
)

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Type    WarningType `json:"type"`
	Element string      `json:"element,omitempty"`
	Message string      `json:"message"`
}
