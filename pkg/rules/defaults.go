package rules

import "github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"

// Template keys used by recommendations.
const (
	TemplateEnhance = "recommend.enhance"
	TemplateRemedy  = "recommend.remedy"
)

// DefaultLanguage is the language of the built-in templates.
const DefaultLanguage = "en"

// Default returns the built-in rule base. Every call returns a fresh copy so
// callers may use it as the base for overrides.
func Default() *RuleSet {
	return &RuleSet{
		Attributes:    defaultAttributes(),
		Epochs:        defaultEpochs(),
		Profiles:      defaultProfiles(),
		Mansions:      defaultMansions(),
		MansionScores: defaultMansionScores(),
		CenterQuality: 70,
		HomeStars: map[compass.Position]int{
			compass.Center:    5,
			compass.North:     1,
			compass.NorthEast: 8,
			compass.East:      3,
			compass.SouthEast: 4,
			compass.South:     9,
			compass.SouthWest: 2,
			compass.West:      7,
			compass.NorthWest: 6,
		},
		Palaces: map[compass.Position]Element{
			compass.Center:    Earth,
			compass.North:     Water,
			compass.NorthEast: Earth,
			compass.East:      Wood,
			compass.SouthEast: Wood,
			compass.South:     Fire,
			compass.SouthWest: Earth,
			compass.West:      Metal,
			compass.NorthWest: Metal,
		},
		NatureScores: map[Nature]int{
			Auspicious:   90,
			Neutral:      60,
			Inauspicious: 25,
		},
		Affinity: AffinityScores{
			Same:      80,
			Supported: 95,
			Draining:  60,
			Dominant:  70,
			Opposed:   30,
		},
		EventFit: EventFitScores{Favored: 95, Avoided: 20},
		Events:   defaultEvents(),
		Corners: map[CornerKind]CornerTarget{
			Wealth: {Reigning: true},
			Love:   {Star: 4},
		},
		Templates: map[string]map[string]string{
			DefaultLanguage: defaultTemplates(),
		},
	}
}

func defaultAttributes() []AttributeRecord {
	return []AttributeRecord{
		{
			Index: 1, Name: "White One", Element: Water, Nature: Auspicious,
			Meanings:     []string{"career", "travel", "new opportunities"},
			Enhancements: []string{"water_feature", "metal_ornament"},
		},
		{
			Index: 2, Name: "Black Two", Element: Earth, Nature: Inauspicious,
			Meanings: []string{"illness", "fatigue"},
			Remedies: []string{"brass_gourd", "metal_wind_chime"},
		},
		{
			Index: 3, Name: "Jade Three", Element: Wood, Nature: Inauspicious,
			Meanings: []string{"quarrels", "lawsuits"},
			Remedies: []string{"red_accents", "still_light"},
		},
		{
			Index: 4, Name: "Green Four", Element: Wood, Nature: Auspicious,
			Meanings:     []string{"scholarship", "romance"},
			Enhancements: []string{"bamboo_stalks", "study_desk"},
		},
		{
			Index: 5, Name: "Yellow Five", Element: Earth, Nature: Inauspicious,
			Meanings: []string{"misfortune", "obstacles"},
			Remedies: []string{"six_rod_chime", "avoid_renovation"},
		},
		{
			Index: 6, Name: "White Six", Element: Metal, Nature: Neutral,
			Meanings:     []string{"authority", "mentors"},
			Enhancements: []string{"metal_sculpture"},
		},
		{
			Index: 7, Name: "Red Seven", Element: Metal, Nature: Inauspicious,
			Meanings: []string{"theft", "betrayal"},
			Remedies: []string{"still_water", "blue_accents"},
		},
		{
			Index: 8, Name: "White Eight", Element: Earth, Nature: Auspicious,
			Meanings:     []string{"wealth", "property"},
			Enhancements: []string{"citrine_crystal", "earthenware"},
		},
		{
			Index: 9, Name: "Purple Nine", Element: Fire, Nature: Auspicious,
			Meanings:     []string{"celebration", "recognition"},
			Enhancements: []string{"red_lighting", "wood_plants"},
		},
	}
}

func defaultEpochs() []Epoch {
	elements := [9]Element{Water, Earth, Wood, Wood, Earth, Metal, Metal, Earth, Fire}
	epochs := make([]Epoch, 0, len(elements))
	for i, el := range elements {
		start := 1864 + 20*i
		epochs = append(epochs, Epoch{Ordinal: i + 1, Start: start, End: start + 19, Element: el})
	}
	return epochs
}

func fiveBands() []Band {
	return []Band{
		{Min: 90, Rating: "excellent"},
		{Min: 80, Rating: "very_good"},
		{Min: 70, Rating: "good"},
		{Min: 60, Rating: "fair"},
		{Min: 0, Rating: "poor"},
	}
}

func defaultProfiles() map[AnalysisType]AnalysisProfile {
	return map[AnalysisType]AnalysisProfile{
		PersonalDirection: {
			Weights: []Weight{
				{Key: KeyPersonal, Weight: 0.4},
				{Key: KeyUniversal, Weight: 0.3},
				{Key: KeyTemporal, Weight: 0.3},
			},
			Bands:              fiveBands(),
			MaxRecommendations: 5,
		},
		ChartPosition: {
			Weights: []Weight{
				{Key: KeyUniversal, Weight: 0.4},
				{Key: KeyTemporal, Weight: 0.6},
			},
			Bands: []Band{
				{Min: 75, Rating: "favorable"},
				{Min: 50, Rating: "mixed"},
				{Min: 0, Rating: "unfavorable"},
			},
			MaxRecommendations: 8,
		},
		WealthCorner: {
			Weights: []Weight{
				{Key: KeyPersonal, Weight: 0.3},
				{Key: KeyUniversal, Weight: 0.2},
				{Key: KeyTemporal, Weight: 0.5},
			},
			Bands:              fiveBands(),
			MaxRecommendations: 6,
		},
		LoveCorner: {
			Weights: []Weight{
				{Key: KeyPersonal, Weight: 0.35},
				{Key: KeyUniversal, Weight: 0.25},
				{Key: KeyTemporal, Weight: 0.4},
			},
			Bands:              fiveBands(),
			MaxRecommendations: 6,
		},
		DateCompatibility: {
			Weights: []Weight{
				{Key: KeyPersonal, Weight: 0.4},
				{Key: KeyUniversal, Weight: 0.35},
				{Key: KeyTemporal, Weight: 0.25},
			},
			Bands:              fiveBands(),
			MaxRecommendations: 8,
		},
		DayQuality: {
			Weights: []Weight{
				{Key: KeyUniversal, Weight: 0.35},
				{Key: KeyTemporal, Weight: 0.45},
				{Key: KeyVariation, Weight: 0.2},
			},
			Bands: []Band{
				{Min: 85, Rating: "very_auspicious"},
				{Min: 70, Rating: "auspicious"},
				{Min: 50, Rating: "average"},
				{Min: 35, Rating: "inauspicious"},
				{Min: 0, Rating: "very_inauspicious"},
			},
			MaxRecommendations: 5,
		},
	}
}

// defaultMansions is the Eight Mansions table: for each personal indicator,
// the quality of every compass direction.
func defaultMansions() map[int]map[compass.Position]Mansion {
	row := func(shengQi, tianYi, yanNian, fuWei, huoHai, wuGui, liuSha, jueMing compass.Position) map[compass.Position]Mansion {
		return map[compass.Position]Mansion{
			shengQi: ShengQi, tianYi: TianYi, yanNian: YanNian, fuWei: FuWei,
			huoHai: HuoHai, wuGui: WuGui, liuSha: LiuSha, jueMing: JueMing,
		}
	}
	const (
		n  = compass.North
		ne = compass.NorthEast
		e  = compass.East
		se = compass.SouthEast
		s  = compass.South
		sw = compass.SouthWest
		w  = compass.West
		nw = compass.NorthWest
	)
	return map[int]map[compass.Position]Mansion{
		1: row(se, e, s, n, w, ne, nw, sw),
		2: row(ne, w, nw, sw, e, se, s, n),
		3: row(s, n, se, e, sw, nw, ne, w),
		4: row(n, s, e, se, nw, sw, w, ne),
		6: row(w, ne, sw, nw, se, e, n, s),
		7: row(nw, sw, ne, w, n, s, se, e),
		8: row(sw, nw, w, ne, s, n, e, se),
		9: row(e, se, n, s, ne, w, sw, nw),
	}
}

func defaultMansionScores() map[Mansion]int {
	return map[Mansion]int{
		ShengQi: 95,
		TianYi:  88,
		YanNian: 82,
		FuWei:   75,
		HuoHai:  40,
		WuGui:   30,
		LiuSha:  25,
		JueMing: 15,
	}
}

func defaultEvents() map[string]EventProfile {
	return map[string]EventProfile{
		"wedding":          {Favored: []int{9, 4, 8, 1}, Avoided: []int{2, 5, 7}},
		"business-opening": {Favored: []int{8, 9, 6, 1}, Avoided: []int{5, 2, 3}},
		"relocation":       {Favored: []int{8, 1, 6, 9}, Avoided: []int{5, 2}},
		"travel":           {Favored: []int{1, 6, 4}, Avoided: []int{5, 7}},
		"investment":       {Favored: []int{8, 9, 6}, Avoided: []int{7, 5, 3}},
		"medical":          {Favored: []int{6, 1, 8}, Avoided: []int{2, 5}},
		"study":            {Favored: []int{4, 1, 9}, Avoided: []int{3, 5}},
		"gathering":        {Favored: []int{9, 8, 4}, Avoided: []int{3, 7}},
		"grooming":         {Favored: []int{9, 4}, Avoided: []int{5}},
		"purchase":         {Favored: []int{8, 6, 9}, Avoided: []int{7, 5}},
		"ritual":           {Favored: []int{6, 1, 9}, Avoided: []int{5, 2}},
		"other":            {Favored: []int{8, 9}, Avoided: []int{5}},
	}
}

func defaultTemplates() map[string]string {
	return map[string]string{
		TemplateEnhance: "Activate %s with %s.",
		TemplateRemedy:  "Counter %s with %s.",

		"fragment.water_feature":    "a small water feature",
		"fragment.metal_ornament":   "metal ornaments",
		"fragment.brass_gourd":      "a brass gourd",
		"fragment.metal_wind_chime": "a metal wind chime",
		"fragment.red_accents":      "red accents",
		"fragment.still_light":      "a steady warm light",
		"fragment.bamboo_stalks":    "four stalks of lucky bamboo",
		"fragment.study_desk":       "a tidy study desk",
		"fragment.six_rod_chime":    "a six-rod metal chime",
		"fragment.avoid_renovation": "no renovation work",
		"fragment.metal_sculpture":  "a metal sculpture",
		"fragment.still_water":      "a bowl of still water",
		"fragment.blue_accents":     "blue or black accents",
		"fragment.citrine_crystal":  "a citrine crystal",
		"fragment.earthenware":      "earthenware or ceramics",
		"fragment.red_lighting":     "red lighting",
		"fragment.wood_plants":      "healthy green plants",
	}
}
