package semantic

import "fmt"

// UnsupportedVariantError reports a concept reference variant the resolver
// does not recognize.
type UnsupportedVariantError struct {
	Variant string
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("unsupported reference variant: %s", e.Variant)
}

// MissingFieldError reports a structurally present reference that lacks a
// required field, e.g. a single-concept reference with no identifier.
type MissingFieldError struct {
	Reference string
	Field     string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("reference %q has no %s", e.Reference, e.Field)
}

// TemplateNotFoundError reports a lookup for an unknown template name.
type TemplateNotFoundError struct {
	Name string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template not found: %s", e.Name)
}
