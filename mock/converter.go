package mock

import (
	relnews "github.com/FedorVeriaiskii/dynatrace-release-summarizer-agent"
)

var _ relnews.Converter = (*Converter)(nil)

// Converter is a mock implementation of relnews.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
