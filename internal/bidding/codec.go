package bidding

import "github.com/openconf/reviewcycle/internal/models"

// Canonical backend representation of the four choices. This table is the
// single place the wire enum is mapped; screens and engines must not carry
// their own copies.
const (
	wireInterested    = "interested"
	wireMaybe         = "maybe"
	wireNotInterested = "not_interested"
	wireNoSelection   = "no_selection"
)

var choiceToWire = map[models.Choice]string{
	models.ChoiceInterested:    wireInterested,
	models.ChoiceMaybe:         wireMaybe,
	models.ChoiceNotInterested: wireNotInterested,
	models.ChoiceNoSelection:   wireNoSelection,
}

var wireToChoice = map[string]models.Choice{
	wireInterested:    models.ChoiceInterested,
	wireMaybe:         models.ChoiceMaybe,
	wireNotInterested: models.ChoiceNotInterested,
	wireNoSelection:   models.ChoiceNoSelection,
}

// WireValue serializes a choice for a bid write.
func WireValue(c models.Choice) string {
	if v, ok := choiceToWire[c]; ok {
		return v
	}
	return wireNoSelection
}

// ParseChoice decodes a backend choice string. Absent, legacy or otherwise
// unrecognized values decode to NoSelection instead of failing; a reviewer's
// bid list must stay readable across backend enum drift.
func ParseChoice(value *string) models.Choice {
	if value == nil {
		return models.ChoiceNoSelection
	}
	if c, ok := wireToChoice[*value]; ok {
		return c
	}
	return models.ChoiceNoSelection
}
