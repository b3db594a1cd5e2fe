package mock

import "github.com/fwojciec/nanodocs"

var _ nanodocs.Parser = (*Parser)(nil)

// Parser is a mock implementation of nanodocs.Parser.
type Parser struct {
	ParseFn func(html string, source nanodocs.Source) (*nanodocs.EntrySet, error)
}

func (p *Parser) Parse(html string, source nanodocs.Source) (*nanodocs.EntrySet, error) {
	return p.ParseFn(html, source)
}
