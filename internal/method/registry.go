package method

// The canonical parameter tuples. Values are the published conventions of
// each authority; the adjustments bring computed times in line with each
// authority's official tables.
var registry = map[ID]Params{
	MWL: {
		FajrAngle:   18,
		Isha:        Angle(17),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Dhuhr: 1},
	},
	ISNA: {
		FajrAngle:   15,
		Isha:        Angle(15),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: -12.5, Dhuhr: 5, Asr: -1, Maghrib: 2, Isha: -1.5},
	},
	Egypt: {
		FajrAngle:   19.5,
		Isha:        Angle(17.5),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: -0.5, Sunrise: -0.5, Asr: 0.5, Maghrib: -1},
	},
	UmmAlQura: {
		FajrAngle: 18.5,
		Isha:      MinutesAfterSunset(90),
		Maghrib:   MinutesAfterSunset(1),
	},
	Qatar: {
		FajrAngle:   18,
		Isha:        MinutesAfterSunset(90),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: -0.5, Maghrib: 2, Isha: 3},
	},
	Dubai: {
		FajrAngle:   18.2,
		Isha:        Angle(18.2),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Sunrise: -3.5, Dhuhr: 3, Asr: 1.5, Maghrib: 2.5, Isha: 0.5},
	},
	JAKIM: {
		FajrAngle:   18,
		Isha:        Angle(18),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: 1, Dhuhr: 2, Asr: 1, Isha: 1},
	},
	Kemenag: {
		FajrAngle:   20,
		Isha:        Angle(18),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: 2, Sunrise: -4, Dhuhr: 3, Asr: 2, Maghrib: 2, Isha: 2},
	},
	Singapore: {
		FajrAngle:   20,
		Isha:        Angle(18),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: 0.5, Sunrise: 0.5, Dhuhr: 1, Asr: 1, Isha: 1},
	},
	France12: {
		FajrAngle: 12,
		Isha:      Angle(12),
		Maghrib:   MinutesAfterSunset(1),
	},
	France15: {
		FajrAngle: 15,
		Isha:      Angle(15),
		Maghrib:   MinutesAfterSunset(1),
	},
	France18: {
		FajrAngle: 18,
		Isha:      Angle(18),
		Maghrib:   MinutesAfterSunset(1),
	},
	Turkey: {
		FajrAngle:   18,
		Isha:        Angle(17),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Sunrise: -7, Dhuhr: 5, Asr: 5.5, Maghrib: 7, Isha: 1.5},
	},
	Russia: {
		FajrAngle:   16,
		Isha:        Angle(15),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Fajr: -0.5, Sunrise: -0.5, Dhuhr: -0.5, Asr: 0.5, Maghrib: -1.5, Isha: -0.5},
	},
	Moonsighting: {
		FajrAngle:   18,
		Isha:        Angle(18),
		Maghrib:     MinutesAfterSunset(1),
		Shafaq:      ShafaqGeneral,
		Adjustments: Adjustments{Dhuhr: 5, Maghrib: 3},
	},
	Tehran: {
		FajrAngle: 17.7,
		Isha:      Angle(14),
		Maghrib:   Angle(4.5),
		Midnight:  MidnightJafari,
	},
	Jafari: {
		FajrAngle: 16,
		Isha:      Angle(14),
		Maghrib:   Angle(4),
		Midnight:  MidnightJafari,
	},
	Karachi: {
		FajrAngle:   18,
		Isha:        Angle(18),
		Maghrib:     MinutesAfterSunset(1),
		Adjustments: Adjustments{Dhuhr: 1},
	},
}

func init() {
	// JAKIMKN has no independent published tuple; it follows JAKIM.
	registry[JAKIMKN] = registry[JAKIM]
	// Custom means "MWL defaults unless overridden".
	registry[Custom] = registry[MWL]
}

// Params returns the method's parameter tuple. The returned value is a copy;
// mutating it does not affect the registry. Unknown IDs fall back to MWL,
// matching the Custom semantics; callers that need strictness should check
// Valid first.
func (id ID) Params() Params {
	if p, ok := registry[id]; ok {
		return p
	}
	return registry[MWL]
}
