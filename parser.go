package nanodocs

// Parser extracts entries from a listing page.
type Parser interface {
	// Parse reads the HTML of the source's listing page and returns its
	// entries. A document without any entry heading yields an empty set
	// together with an EPARSE error.
	Parse(html string, source Source) (*EntrySet, error)
}
