package template

import (
	_ "embed"

	"github.com/entwurf/entwurf-cli/pkg/models"
)

//go:embed schemas/wtt_v1.yaml
var wttV1 []byte

// BuiltinSections expands the built-in Vorhabensbeschreibung schema
// (system template "wtt_v1"). The schema is embedded, so expansion can
// only fail if the shipped file is broken; that is a programmer error.
func BuiltinSections() []models.Section {
	secs, err := ExpandBytes(wttV1)
	if err != nil {
		panic("template: embedded wtt_v1 schema is invalid: " + err.Error())
	}
	return secs
}
