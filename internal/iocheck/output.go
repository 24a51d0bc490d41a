package iocheck

import (
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/kioskware/kioskpack/pkg/integrity"
	"gopkg.in/yaml.v3"
)

// Encode renders a report as "yaml" or, by default, indented JSON.
func Encode(r *integrity.Report, format string) ([]byte, error) {
	if strings.EqualFold(format, "yaml") {
		return yaml.Marshal(r)
	}
	enc := gnfmt.GNjson{Pretty: true}
	return enc.Encode(r)
}
