package storage

import (
	"fmt"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Catalog ids are lowercase words joined by hyphens or underscores (potion_hp, fire-drake).
var identifierPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope for a single catalog record.
type Asset[T ValidatingSpec] struct {
	Version    uint   `json:"version"`
	Identifier string `json:"id"`
	Spec       T      `json:"spec"`
}

func (a *Asset[T]) Id() string {
	return a.Identifier
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	switch {
	case a.Identifier == "":
		el.Add(fmt.Errorf("id must be set"))
	case !identifierPattern.MatchString(a.Identifier):
		el.Add(fmt.Errorf("id %q must be lowercase alphanumeric", a.Identifier))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}
