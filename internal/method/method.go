// Package method defines the closed set of prayer-time calculation
// conventions and the parameter tuple each one maps to: twilight angles,
// fixed intervals, midnight mode, shafaq type, and built-in minute
// adjustments. The registry is immutable; callers get copies.
package method

import (
	"fmt"
	"strings"
)

// ID names a calculation convention. The set is closed: adding a method
// means adding a constant before Custom, a registry entry, and a name here.
type ID int

const (
	MWL ID = iota
	ISNA
	Egypt
	UmmAlQura
	Qatar
	Dubai
	JAKIM
	JAKIMKN
	Kemenag
	Singapore
	France12
	France15
	France18
	Turkey
	Russia
	Moonsighting
	Tehran
	Jafari
	Karachi
	Custom
)

// methodNames is the canonical spelling of each ID, also used for parsing.
var methodNames = map[ID]string{
	MWL:          "MWL",
	ISNA:         "ISNA",
	Egypt:        "Egypt",
	UmmAlQura:    "UmmAlQura",
	Qatar:        "Qatar",
	Dubai:        "Dubai",
	JAKIM:        "JAKIM",
	JAKIMKN:      "JAKIMKN",
	Kemenag:      "Kemenag",
	Singapore:    "Singapore",
	France12:     "France12",
	France15:     "France15",
	France18:     "France18",
	Turkey:       "Turkey",
	Russia:       "Russia",
	Moonsighting: "Moonsighting",
	Tehran:       "Tehran",
	Jafari:       "Jafari",
	Karachi:      "Karachi",
	Custom:       "Custom",
}

// IDs returns every method in declaration order.
func IDs() []ID {
	ids := make([]ID, 0, len(methodNames))
	for id := MWL; id <= Custom; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether the ID is a member of the closed set.
func (id ID) Valid() bool {
	_, ok := methodNames[id]
	return ok
}

func (id ID) String() string {
	if s, ok := methodNames[id]; ok {
		return s
	}
	return fmt.Sprintf("method(%d)", int(id))
}

// Parse resolves a method name case-insensitively.
func Parse(name string) (ID, error) {
	for id, s := range methodNames {
		if strings.EqualFold(s, name) {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown method %q", name)
}

// AsrSchool selects the Asr shadow geometry.
type AsrSchool int

const (
	// Standard: Asr when the shadow equals the object's length.
	Standard AsrSchool = iota
	// Hanafi: Asr when the shadow equals twice the object's length.
	Hanafi
)

// ShadowLength returns the shadow factor for the school.
func (s AsrSchool) ShadowLength() float64 {
	if s == Hanafi {
		return 2
	}
	return 1
}

func (s AsrSchool) String() string {
	if s == Hanafi {
		return "Hanafi"
	}
	return "Standard"
}

// ParseAsrSchool resolves a school name ("standard"/"shafi" or "hanafi").
func ParseAsrSchool(name string) (AsrSchool, error) {
	switch strings.ToLower(name) {
	case "standard", "shafi":
		return Standard, nil
	case "hanafi":
		return Hanafi, nil
	}
	return 0, fmt.Errorf("unknown asr school %q", name)
}

// HighLatitudeRule selects the fallback for Fajr/Isha when the sun never
// reaches the method's twilight angle.
type HighLatitudeRule int

const (
	// NightMiddle bounds Fajr/Isha by half the night.
	NightMiddle HighLatitudeRule = iota
	// AngleBased bounds by night * angle/60.
	AngleBased
	// OneSeventh bounds by a seventh of the night.
	OneSeventh
	// None applies no fallback; unreachable angles surface as errors.
	None
)

func (r HighLatitudeRule) String() string {
	switch r {
	case AngleBased:
		return "AngleBased"
	case OneSeventh:
		return "OneSeventh"
	case None:
		return "None"
	}
	return "NightMiddle"
}

// ParseHighLatitudeRule resolves a rule name case-insensitively.
func ParseHighLatitudeRule(name string) (HighLatitudeRule, error) {
	switch strings.ToLower(name) {
	case "nightmiddle", "middleofnight":
		return NightMiddle, nil
	case "anglebased":
		return AngleBased, nil
	case "oneseventh", "seventhofnight":
		return OneSeventh, nil
	case "none":
		return None, nil
	}
	return 0, fmt.Errorf("unknown high latitude rule %q", name)
}

// MidnightMode selects what "night" means for the midnight derivation.
type MidnightMode int

const (
	// MidnightStandard measures the night sunset to sunrise.
	MidnightStandard MidnightMode = iota
	// MidnightJafari measures the night maghrib to fajr.
	MidnightJafari
)

func (m MidnightMode) String() string {
	if m == MidnightJafari {
		return "Jafari"
	}
	return "Standard"
}

// ParseMidnightMode resolves a midnight mode name.
func ParseMidnightMode(name string) (MidnightMode, error) {
	switch strings.ToLower(name) {
	case "standard":
		return MidnightStandard, nil
	case "jafari":
		return MidnightJafari, nil
	}
	return 0, fmt.Errorf("unknown midnight mode %q", name)
}

// Shafaq is the evening twilight the Moonsighting Committee's seasonal Isha
// formula is parameterized by.
type Shafaq int

const (
	ShafaqGeneral Shafaq = iota
	ShafaqAhmer
	ShafaqAbyad
)

func (s Shafaq) String() string {
	switch s {
	case ShafaqAhmer:
		return "Ahmer"
	case ShafaqAbyad:
		return "Abyad"
	}
	return "General"
}

// ParseShafaq resolves a shafaq name.
func ParseShafaq(name string) (Shafaq, error) {
	switch strings.ToLower(name) {
	case "general":
		return ShafaqGeneral, nil
	case "ahmer", "red":
		return ShafaqAhmer, nil
	case "abyad", "white":
		return ShafaqAbyad, nil
	}
	return 0, fmt.Errorf("unknown shafaq %q", name)
}
