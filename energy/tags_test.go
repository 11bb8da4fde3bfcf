package energy

import (
	"errors"
	"testing"
)

func TestParseTags(t *testing.T) {
	if tag, err := ParseIntensityTag("radial_hash"); err != nil || tag != IntensityRadialHash {
		t.Errorf("ParseIntensityTag = %v, %v", tag, err)
	}
	if tag, err := ParseInteractionTag("Piecewise-Box"); err != nil || tag != InteractionPiecewiseBox {
		t.Errorf("ParseInteractionTag = %v, %v", tag, err)
	}
	if tag, err := ParseRegenerationTag(" crenel "); err != nil || tag != RegenerationCrenel {
		t.Errorf("ParseRegenerationTag = %v, %v", tag, err)
	}
	if tag, err := ParsePrecipitationTag("CYCLE"); err != nil || tag != PrecipitationCycle {
		t.Errorf("ParsePrecipitationTag = %v, %v", tag, err)
	}
}

func TestParseUnknownTag(t *testing.T) {
	_, err := ParseInteractionTag("SPIRAL")
	if !errors.Is(err, ErrConfig) || !errors.Is(err, ErrUnknownTag) {
		t.Errorf("err = %v, want ErrConfig wrapping ErrUnknownTag", err)
	}
}

func TestTagStringRoundTrip(t *testing.T) {
	for tag := InteractionZero; tag <= InteractionFour; tag++ {
		got, err := ParseInteractionTag(tag.String())
		if err != nil || got != tag {
			t.Errorf("round trip of %v = %v, %v", tag, got, err)
		}
	}
	if s := IntensityTag(9).String(); s != "TAG(9)" {
		t.Errorf("String() = %q, want TAG(9)", s)
	}
}
