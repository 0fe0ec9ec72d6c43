package culture

// Built-in reference tables. Dimension scores follow the published
// country-comparison values rounded to integers; they are reference inputs,
// not measurements made by this engine.

func defaultRegions() []Region {
	return []Region{
		{Code: "USA", Name: "United States", Aliases: []string{"US", "America"}, Dimensions: Dimensions{40, 91, 62, 46, 26, 68}, Blocs: []string{"NATO", "G7", "G20", "APEC", "OECD", "USMCA"}},
		{Code: "GBR", Name: "United Kingdom", Aliases: []string{"UK", "Britain"}, Dimensions: Dimensions{35, 89, 66, 35, 51, 69}, Blocs: []string{"NATO", "G7", "G20", "OECD", "Commonwealth"}},
		{Code: "DEU", Name: "Germany", Dimensions: Dimensions{35, 67, 66, 65, 83, 40}, Blocs: []string{"EU", "NATO", "G7", "G20", "OECD"}},
		{Code: "FRA", Name: "France", Dimensions: Dimensions{68, 71, 43, 86, 63, 48}, Blocs: []string{"EU", "NATO", "G7", "G20", "OECD"}},
		{Code: "JPN", Name: "Japan", Dimensions: Dimensions{54, 46, 95, 92, 88, 42}, Blocs: []string{"G7", "G20", "APEC", "OECD"}},
		{Code: "CHN", Name: "China", Dimensions: Dimensions{80, 20, 66, 30, 87, 24}, Blocs: []string{"BRICS", "G20", "APEC"}},
		{Code: "IND", Name: "India", Dimensions: Dimensions{77, 48, 56, 40, 51, 26}, Blocs: []string{"BRICS", "G20", "Commonwealth"}},
		{Code: "BRA", Name: "Brazil", Dimensions: Dimensions{69, 38, 49, 76, 44, 59}, Blocs: []string{"BRICS", "G20", "Mercosur"}},
		{Code: "MEX", Name: "Mexico", Dimensions: Dimensions{81, 30, 69, 82, 24, 97}, Blocs: []string{"G20", "APEC", "OECD", "USMCA"}},
		{Code: "CAN", Name: "Canada", Dimensions: Dimensions{39, 80, 52, 48, 36, 68}, Blocs: []string{"NATO", "G7", "G20", "APEC", "OECD", "USMCA", "Commonwealth"}},
		{Code: "AUS", Name: "Australia", Dimensions: Dimensions{38, 90, 61, 51, 21, 71}, Blocs: []string{"G20", "APEC", "OECD", "Commonwealth"}},
		{Code: "KOR", Name: "South Korea", Aliases: []string{"Korea"}, Dimensions: Dimensions{60, 18, 39, 85, 100, 29}, Blocs: []string{"G20", "APEC", "OECD"}},
		{Code: "ITA", Name: "Italy", Dimensions: Dimensions{50, 76, 70, 75, 61, 30}, Blocs: []string{"EU", "NATO", "G7", "G20", "OECD"}},
		{Code: "ESP", Name: "Spain", Dimensions: Dimensions{57, 51, 42, 86, 48, 44}, Blocs: []string{"EU", "NATO", "OECD"}},
		{Code: "NLD", Name: "Netherlands", Aliases: []string{"Holland"}, Dimensions: Dimensions{38, 80, 14, 53, 67, 68}, Blocs: []string{"EU", "NATO", "OECD"}},
		{Code: "SWE", Name: "Sweden", Dimensions: Dimensions{31, 71, 5, 29, 53, 78}, Blocs: []string{"EU", "NATO", "OECD", "Nordic Council"}},
		{Code: "NOR", Name: "Norway", Dimensions: Dimensions{31, 69, 8, 50, 35, 55}, Blocs: []string{"NATO", "OECD", "Nordic Council"}},
		{Code: "RUS", Name: "Russia", Dimensions: Dimensions{93, 39, 36, 95, 81, 20}, Blocs: []string{"BRICS", "G20"}},
		{Code: "TUR", Name: "Turkey", Aliases: []string{"Turkiye"}, Dimensions: Dimensions{66, 37, 45, 85, 46, 49}, Blocs: []string{"NATO", "G20", "OECD"}},
		{Code: "SAU", Name: "Saudi Arabia", Dimensions: Dimensions{95, 25, 60, 80, 36, 52}, Blocs: []string{"G20", "GCC", "Arab League"}},
		{Code: "ARE", Name: "United Arab Emirates", Aliases: []string{"UAE"}, Dimensions: Dimensions{90, 25, 50, 80, 36, 32}, Blocs: []string{"GCC", "Arab League"}},
		{Code: "ZAF", Name: "South Africa", Dimensions: Dimensions{49, 65, 63, 49, 34, 63}, Blocs: []string{"BRICS", "G20", "African Union", "Commonwealth"}},
		{Code: "NGA", Name: "Nigeria", Dimensions: Dimensions{80, 30, 60, 55, 13, 84}, Blocs: []string{"African Union", "Commonwealth"}},
		{Code: "IDN", Name: "Indonesia", Dimensions: Dimensions{78, 14, 46, 48, 62, 38}, Blocs: []string{"G20", "APEC", "ASEAN"}},
		{Code: "SGP", Name: "Singapore", Dimensions: Dimensions{74, 20, 48, 8, 72, 46}, Blocs: []string{"APEC", "ASEAN", "Commonwealth"}},
	}
}

func defaultBlocs() []Bloc {
	return []Bloc{
		{Name: "EU", Members: []string{"DEU", "FRA", "ITA", "ESP", "NLD", "SWE"}},
		{Name: "NATO", Members: []string{"USA", "GBR", "DEU", "FRA", "ITA", "ESP", "NLD", "SWE", "NOR", "TUR", "CAN"}},
		{Name: "G7", Members: []string{"USA", "GBR", "DEU", "FRA", "JPN", "ITA", "CAN"}},
		{Name: "G20", Members: []string{"USA", "GBR", "DEU", "FRA", "JPN", "CHN", "IND", "BRA", "MEX", "CAN", "AUS", "KOR", "ITA", "RUS", "TUR", "SAU", "ZAF", "IDN"}},
		{Name: "BRICS", Members: []string{"BRA", "RUS", "IND", "CHN", "ZAF"}},
		{Name: "APEC", Members: []string{"USA", "JPN", "CHN", "MEX", "CAN", "AUS", "KOR", "IDN", "SGP"}},
		{Name: "OECD", Members: []string{"USA", "GBR", "DEU", "FRA", "JPN", "MEX", "CAN", "AUS", "KOR", "ITA", "ESP", "NLD", "SWE", "NOR", "TUR"}},
		{Name: "ASEAN", Members: []string{"IDN", "SGP"}},
		{Name: "GCC", Members: []string{"SAU", "ARE"}},
		{Name: "Arab League", Members: []string{"SAU", "ARE"}},
		{Name: "African Union", Members: []string{"ZAF", "NGA"}},
		{Name: "Mercosur", Members: []string{"BRA"}},
		{Name: "USMCA", Members: []string{"USA", "MEX", "CAN"}},
		{Name: "Commonwealth", Members: []string{"GBR", "IND", "CAN", "AUS", "ZAF", "NGA", "SGP"}},
		{Name: "Nordic Council", Members: []string{"SWE", "NOR"}},
	}
}

func defaultFrameworks() []Framework {
	return []Framework{
		{
			Name:     "religious",
			Keywords: []string{"god", "allah", "jesus", "buddha", "prayer", "halal", "kosher", "sacred", "blasphemy", "church", "mosque", "temple"},
			Guidance: "Avoid casual or commercial use of religious figures, rituals and dietary terms.",
		},
		{
			Name:     "lgbtq",
			Keywords: []string{"gay", "lesbian", "transgender", "queer", "pride", "same-sex", "non-binary"},
			Guidance: "Representation norms and legal context differ sharply by market; avoid tokenism and check local legal risk.",
		},
		{
			Name:     "gender",
			Keywords: []string{"housewife", "man up", "girly", "bossy", "emotional", "breadwinner", "for her", "for him"},
			Guidance: "Avoid role stereotyping and gender-coded product framing.",
		},
		{
			Name:     "racial",
			Keywords: []string{"exotic", "tribal", "urban", "ethnic", "whitening", "fair skin", "oriental"},
			Guidance: "Avoid othering descriptors and colorism framing.",
		},
		{
			Name:     "disability",
			Keywords: []string{"crazy", "insane", "lame", "crippled", "dumb", "blind to", "deaf to", "wheelchair-bound"},
			Guidance: "Use person-first or identity-first language consistently; avoid ableist metaphors.",
		},
		{
			Name:     "age",
			Keywords: []string{"anti-aging", "young and dynamic", "digital native", "over the hill", "senior moment", "boomer", "millennial attitude"},
			Guidance: "Avoid age-coded capability claims in hiring or product contexts.",
		},
		{
			Name:     "body_image",
			Keywords: []string{"bikini body", "flawless", "perfect body", "fat", "skinny", "beach ready", "guilt-free"},
			Guidance: "Avoid idealized-body framing and food-guilt language.",
		},
		{
			Name:     "mental_health",
			Keywords: []string{"ocd", "bipolar", "depressed", "triggered", "psycho", "committed suicide"},
			Guidance: "Avoid diagnostic terms as casual adjectives; use safe-messaging guidelines around self-harm.",
		},
		{
			Name:     "political",
			Keywords: []string{"regime", "freedom fighter", "terrorist", "occupied", "disputed territory", "election", "propaganda"},
			Guidance: "Avoid taking sides on contested territories and political movements.",
		},
		{
			Name:     "socioeconomic",
			Keywords: []string{"ghetto", "low class", "third world", "peasant", "welfare queen", "white trash"},
			Guidance: "Avoid class-coded pejoratives and development-era labels.",
		},
		{
			Name:     "indigenous",
			Keywords: []string{"spirit animal", "tribe", "powwow", "totem", "savage", "headdress", "chief"},
			Guidance: "Avoid appropriating ceremonial terms and artifacts for marketing.",
		},
	}
}

// defaultIdioms is the watch list for culture-bound idioms that rarely
// translate: literal renderings read as nonsense or, worse, as offense.
func defaultIdioms() []string {
	return []string{
		"break a leg",
		"piece of cake",
		"kick the bucket",
		"hit the ground running",
		"knock it out of the park",
		"ballpark figure",
		"touch base",
		"low-hanging fruit",
		"raining cats and dogs",
		"cold turkey",
		"bite the bullet",
		"spill the beans",
		"under the weather",
		"the whole nine yards",
		"throw in the towel",
		"cut to the chase",
		"once in a blue moon",
		"burn the midnight oil",
		"elephant in the room",
		"let the cat out of the bag",
	}
}

// DefaultDataset returns a Dataset over the built-in reference tables.
func DefaultDataset() *Dataset {
	return NewDataset(defaultRegions(), defaultBlocs(), defaultFrameworks(), defaultIdioms())
}
