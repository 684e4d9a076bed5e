// Copyright © 2021 Io FinNet Group, Inc.

package color

// Input field names, as reported in validation errors.
const (
	FieldColor1      = "color1"
	FieldColor2      = "color2"
	FieldBaseColor   = "baseColor"
	FieldAliceSecret = "aliceSecret"
	FieldBobSecret   = "bobSecret"
)

type (
	MixResult struct {
		Mixed      Color
		Components []string
	}

	FinalResult struct {
		Final        Color
		Intermediate Color
		Components   []string
	}
)

// ConfirmBase checks the public base color both parties start from.
func ConfirmBase(base string) (Color, error) {
	return parseField(FieldBaseColor, base)
}

// Mix blends two colors. Components echo the inputs in the order given.
func Mix(color1, color2 string) (*MixResult, error) {
	a, err := parseField(FieldColor1, color1)
	if err != nil {
		return nil, err
	}
	b, err := parseField(FieldColor2, color2)
	if err != nil {
		return nil, err
	}
	return &MixResult{
		Mixed:      MixTwo(a, b),
		Components: []string{color1, color2},
	}, nil
}

// Final blends the two secret colors first and then blends the result into the base,
// the order the demo shows: intermediate = mix(alice, bob), final = mix(base, intermediate).
func Final(base, aliceSecret, bobSecret string) (*FinalResult, error) {
	b, err := parseField(FieldBaseColor, base)
	if err != nil {
		return nil, err
	}
	alice, err := parseField(FieldAliceSecret, aliceSecret)
	if err != nil {
		return nil, err
	}
	bob, err := parseField(FieldBobSecret, bobSecret)
	if err != nil {
		return nil, err
	}
	inner := MixTwo(alice, bob)
	return &FinalResult{
		Final:        MixTwo(b, inner),
		Intermediate: inner,
		Components:   []string{base, aliceSecret, bobSecret},
	}, nil
}
