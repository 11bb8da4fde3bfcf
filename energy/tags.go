package energy

import (
	"fmt"
	"strings"
)

// IntensityTag names an intensity variant.
type IntensityTag uint8

const (
	IntensityZero IntensityTag = iota
	IntensityConstant
	IntensityRadialHash
)

// InteractionTag names an interaction variant.
type InteractionTag uint8

const (
	InteractionZero InteractionTag = iota
	InteractionPiecewiseBox
	InteractionCross
	InteractionCrossHash
	InteractionMoore
	InteractionGaussian
	InteractionFour
)

// RegenerationTag names a regeneration variant.
type RegenerationTag uint8

const (
	RegenerationZero RegenerationTag = iota
	RegenerationConstant
	RegenerationCustom
	RegenerationCrenel
)

// PrecipitationTag names a precipitation variant.
type PrecipitationTag uint8

const (
	PrecipitationZero PrecipitationTag = iota
	PrecipitationConstant
	PrecipitationCycle
	PrecipitationCustom
)

var intensityNames = []string{"ZERO", "CONSTANT", "RADIAL_HASH"}

var interactionNames = []string{"ZERO", "PIECEWISE_BOX", "CROSS", "CROSS_HASH", "MOORE", "GAUSSIAN", "FOUR"}

var regenerationNames = []string{"ZERO", "CONSTANT", "CUSTOM", "CRENEL"}

var precipitationNames = []string{"ZERO", "CONSTANT", "CYCLE", "CUSTOM"}

func (t IntensityTag) String() string     { return tagName(intensityNames, int(t)) }
func (t InteractionTag) String() string   { return tagName(interactionNames, int(t)) }
func (t RegenerationTag) String() string  { return tagName(regenerationNames, int(t)) }
func (t PrecipitationTag) String() string { return tagName(precipitationNames, int(t)) }

func tagName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("TAG(%d)", i)
	}
	return names[i]
}

// parseTag resolves a case-insensitive name; '-' and ' ' are read as '_'.
func parseTag(family string, names []string, s string) (int, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for i, n := range names {
		if n == norm {
			return i, nil
		}
	}
	return 0, &ConfigError{Scope: family, Reason: fmt.Sprintf("%q", s), Err: ErrUnknownTag}
}

// ParseIntensityTag resolves an intensity tag name such as "RADIAL_HASH".
func ParseIntensityTag(s string) (IntensityTag, error) {
	i, err := parseTag("intensity", intensityNames, s)
	return IntensityTag(i), err
}

// ParseInteractionTag resolves an interaction tag name such as "CROSS".
func ParseInteractionTag(s string) (InteractionTag, error) {
	i, err := parseTag("interaction", interactionNames, s)
	return InteractionTag(i), err
}

// ParseRegenerationTag resolves a regeneration tag name such as "CONSTANT".
func ParseRegenerationTag(s string) (RegenerationTag, error) {
	i, err := parseTag("regeneration", regenerationNames, s)
	return RegenerationTag(i), err
}

// ParsePrecipitationTag resolves a precipitation tag name such as "CYCLE".
func ParsePrecipitationTag(s string) (PrecipitationTag, error) {
	i, err := parseTag("precipitation", precipitationNames, s)
	return PrecipitationTag(i), err
}
