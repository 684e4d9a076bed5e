// Copyright © 2021 Io FinNet Group, Inc.

package server

import (
	"errors"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/iofinnet/dhlab/color"
	"github.com/iofinnet/dhlab/dh"
)

// message keys
const (
	msgNotPositiveInteger = "%s must be a positive integer."
	msgNotHexColor        = "%s must be a #RRGGBB hex color."
	msgTooLarge           = "Number too large: %s must not exceed %d."
	msgTooManyDigits      = "Number too large: %s must have at most %d digits."
	msgInvalidGroup       = "p must be prime and 1 < g < p."
	msgModulusTooLarge    = "Please choose a smaller modulus (at most %d) for the demonstration."
	msgNoSolutionFound    = "No exponent x found."
	msgBitsOutOfRange     = "%s must be between %d and %d."
	msgBadBody            = "The request body must be a JSON object."
	msgMethodNotAllowed   = "Method not allowed."
	msgInternal           = "Internal server error"
)

var supportedLanguages = []language.Tag{language.English, language.German}

var languageMatcher = language.NewMatcher(supportedLanguages)

func init() {
	german := map[string]string{
		msgNotPositiveInteger: "%s muss eine positive ganze Zahl sein.",
		msgNotHexColor:        "%s muss eine HEX-Farbe der Form #RRGGBB sein.",
		msgTooLarge:           "Zahl zu groß: %s darf höchstens %d sein.",
		msgTooManyDigits:      "Zahl zu groß: %s darf höchstens %d Ziffern haben.",
		msgInvalidGroup:       "p muss prim sein und 1 < g < p.",
		msgModulusTooLarge:    "Bitte ein kleineres p wählen (höchstens %d) für die Demonstration.",
		msgNoSolutionFound:    "Kein Exponent x gefunden.",
		msgBitsOutOfRange:     "%s muss zwischen %d und %d liegen.",
		msgBadBody:            "Der Request-Body muss ein JSON-Objekt sein.",
		msgMethodNotAllowed:   "Methode nicht erlaubt.",
		msgInternal:           "Interner Serverfehler",
	}
	for key, translation := range german {
		if err := message.SetString(language.German, key, translation); err != nil {
			panic(err)
		}
		if err := message.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
}

// printerFor picks English or German from the Accept-Language header, falling back to
// the configured language when the header is absent or matches neither.
func printerFor(r *http.Request, fallback language.Tag) *message.Printer {
	tag := fallback
	if header := r.Header.Get("Accept-Language"); header != "" {
		if prefs, _, err := language.ParseAcceptLanguage(header); err == nil && len(prefs) > 0 {
			if _, idx, conf := languageMatcher.Match(prefs...); conf != language.No {
				tag = supportedLanguages[idx]
			}
		}
	}
	return message.NewPrinter(tag)
}

// requestFields maps engine field names to the JSON names each route reads them from.
var requestFields = map[string]map[string]string{
	"/set_params":       {dh.FieldModulus: "prime"},
	"/public_key":       {dh.FieldModulus: "prime"},
	"/shared_secret":    {dh.FieldModulus: "prime"},
	"/api/discrete_exp": {dh.FieldModulus: "mod", dh.FieldExponent: "exp"},
	"/api/discrete_log": {dh.FieldModulus: "mod"},
}

// requestField names field the way the caller of path spelled it.
func requestField(path, field string) string {
	if name, ok := requestFields[path][field]; ok {
		return name
	}
	return field
}

// describe renders a taxonomy error for the caller of path.
func describe(p *message.Printer, path string, err error) string {
	var e *dh.Error
	if !errors.As(err, &e) {
		return p.Sprintf(msgInternal)
	}
	field := requestField(path, e.Field)
	if errors.Is(err, dh.ErrBitsOutOfRange) {
		return p.Sprintf(msgBitsOutOfRange, field, dh.MinSuggestBits, dh.MaxSuggestBits)
	}
	switch e.Kind {
	case dh.KindInvalidFormat:
		if errors.Is(err, color.ErrNotHexColor) {
			return p.Sprintf(msgNotHexColor, field)
		}
		return p.Sprintf(msgNotPositiveInteger, field)
	case dh.KindTooLarge:
		if errors.Is(err, dh.ErrTooManyDigits) {
			return p.Sprintf(msgTooManyDigits, field, dh.MaxOperandDigits)
		}
		return p.Sprintf(msgTooLarge, field, dh.SafetyCeiling)
	case dh.KindInvalidGroup:
		return p.Sprintf(msgInvalidGroup)
	case dh.KindModulusTooLarge:
		return p.Sprintf(msgModulusTooLarge, dh.DiscreteLogBound)
	case dh.KindNoSolutionFound:
		return p.Sprintf(msgNoSolutionFound)
	}
	return p.Sprintf(msgInternal)
}
