package bidding

import (
	"testing"

	"github.com/openconf/reviewcycle/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestChoiceWireRoundTrip(t *testing.T) {
	choices := []models.Choice{
		models.ChoiceInterested,
		models.ChoiceMaybe,
		models.ChoiceNotInterested,
		models.ChoiceNoSelection,
	}
	for _, c := range choices {
		wire := WireValue(c)
		assert.Equal(t, c, ParseChoice(&wire), "round-trip of %s", c)
	}
}

func TestParseChoiceDefaults(t *testing.T) {
	assert.Equal(t, models.ChoiceNoSelection, ParseChoice(nil))

	legacy := "very_interested"
	assert.Equal(t, models.ChoiceNoSelection, ParseChoice(&legacy),
		"legacy backend values decode to the safe default instead of failing")

	empty := ""
	assert.Equal(t, models.ChoiceNoSelection, ParseChoice(&empty))
}

func TestWireValueUnknownChoice(t *testing.T) {
	assert.Equal(t, "no_selection", WireValue(models.Choice("BOGUS")))
}
