// Package rules holds the static rule base of the engine: the nine attribute
// records, the epoch table, the per-analysis weight and band tables and the
// supporting lookup tables. A RuleSet is immutable once validated.
package rules

import (
	"github.com/lethanhdatit/v0-bocmenh-sub002/pkg/compass"
)

// Element is one of the five phases.
type Element string

const (
	Water Element = "water"
	Wood  Element = "wood"
	Fire  Element = "fire"
	Earth Element = "earth"
	Metal Element = "metal"
)

// Elements returns the five phases in generating order.
func Elements() []Element {
	return []Element{Water, Wood, Fire, Earth, Metal}
}

// Valid reports whether e is one of the five phases.
func (e Element) Valid() bool {
	switch e {
	case Water, Wood, Fire, Earth, Metal:
		return true
	}
	return false
}

// Nature is the polarity of an attribute record.
type Nature string

const (
	Auspicious   Nature = "auspicious"
	Neutral      Nature = "neutral"
	Inauspicious Nature = "inauspicious"
)

func (n Nature) Valid() bool {
	switch n {
	case Auspicious, Neutral, Inauspicious:
		return true
	}
	return false
}

// AttributeRecord is the static metadata attached to a star index 1-9.
// Enhancements and Remedies hold fragment keys resolved by the locale catalog.
type AttributeRecord struct {
	Index        int      `yaml:"index" json:"index"`
	Name         string   `yaml:"name" json:"name"`
	Element      Element  `yaml:"element" json:"element"`
	Nature       Nature   `yaml:"nature" json:"nature"`
	Meanings     []string `yaml:"meanings" json:"meanings,omitempty"`
	Enhancements []string `yaml:"enhancements" json:"enhancements,omitempty"`
	Remedies     []string `yaml:"remedies" json:"remedies,omitempty"`
}

// Fragments returns the text fragments a recommendation may cite for this
// record: remedies for inauspicious records, enhancements otherwise.
func (r AttributeRecord) Fragments() []string {
	if r.Nature == Inauspicious {
		return r.Remedies
	}
	return r.Enhancements
}

// Epoch is one 20-year period of the cycle table. End is inclusive.
type Epoch struct {
	Ordinal int     `yaml:"ordinal" json:"ordinal"`
	Start   int     `yaml:"start" json:"start"`
	End     int     `yaml:"end" json:"end"`
	Element Element `yaml:"element" json:"element"`
}

// Contains reports whether year falls inside the epoch.
func (e Epoch) Contains(year int) bool {
	return year >= e.Start && year <= e.End
}

// AnalysisType names one of the table-driven analyses.
type AnalysisType string

const (
	PersonalDirection AnalysisType = "personal_direction"
	ChartPosition     AnalysisType = "chart_position"
	WealthCorner      AnalysisType = "wealth_corner"
	LoveCorner        AnalysisType = "love_corner"
	DateCompatibility AnalysisType = "date_compatibility"
	DayQuality        AnalysisType = "day_quality"
)

// AnalysisTypes returns every analysis type in a stable order.
func AnalysisTypes() []AnalysisType {
	return []AnalysisType{PersonalDirection, ChartPosition, WealthCorner, LoveCorner, DateCompatibility, DayQuality}
}

// Sub-score keys shared by the analyses. The weight tables list them in
// evaluation order: personal, universal, temporal, then anything else.
const (
	KeyPersonal  = "personal"
	KeyUniversal = "universal"
	KeyTemporal  = "temporal"
	KeyVariation = "variation"
)

// Weight is the share of one sub-score in the overall score.
type Weight struct {
	Key    string  `yaml:"key" json:"key"`
	Weight float64 `yaml:"weight" json:"weight"`
}

// Band maps every overall score >= Min (and below the previous band) to Rating.
type Band struct {
	Min    int    `yaml:"min" json:"min"`
	Rating string `yaml:"rating" json:"rating"`
}

// AnalysisProfile parameterizes the composite scorer for one analysis type.
type AnalysisProfile struct {
	Weights            []Weight `yaml:"weights" json:"weights"`
	Bands              []Band   `yaml:"bands" json:"bands"`
	MaxRecommendations int      `yaml:"max_recommendations" json:"max_recommendations"`
}

// Mansion is one of the eight personal direction qualities.
type Mansion string

const (
	ShengQi Mansion = "sheng_qi"
	TianYi  Mansion = "tian_yi"
	YanNian Mansion = "yan_nian"
	FuWei   Mansion = "fu_wei"
	HuoHai  Mansion = "huo_hai"
	WuGui   Mansion = "wu_gui"
	LiuSha  Mansion = "liu_sha"
	JueMing Mansion = "jue_ming"
)

// Favorable reports whether the mansion is one of the four good directions.
func (m Mansion) Favorable() bool {
	switch m {
	case ShengQi, TianYi, YanNian, FuWei:
		return true
	}
	return false
}

// EventProfile lists the day stars that suit or spoil an event category.
type EventProfile struct {
	Favored []int `yaml:"favored" json:"favored"`
	Avoided []int `yaml:"avoided" json:"avoided"`
}

// CornerKind selects which target star a corner analysis locates.
type CornerKind string

const (
	Wealth CornerKind = "wealth"
	Love   CornerKind = "love"
)

// CornerTarget describes the star a corner analysis looks for. When Reigning
// is set the star is the ordinal of the active epoch and Star is ignored.
type CornerTarget struct {
	Star     int  `yaml:"star" json:"star"`
	Reigning bool `yaml:"reigning" json:"reigning"`
}

// AffinityScores scores the relation between a "self" element and another.
type AffinityScores struct {
	Same      int `yaml:"same" json:"same"`
	Supported int `yaml:"supported" json:"supported"` // other generates self
	Draining  int `yaml:"draining" json:"draining"`   // self generates other
	Dominant  int `yaml:"dominant" json:"dominant"`   // self controls other
	Opposed   int `yaml:"opposed" json:"opposed"`     // other controls self
}

// EventFitScores scores a day star against an event profile.
type EventFitScores struct {
	Favored int `yaml:"favored" json:"favored"`
	Avoided int `yaml:"avoided" json:"avoided"`
}

// RuleSet is the complete rule base. Treat it as read-only after Validate.
type RuleSet struct {
	Attributes    []AttributeRecord                    `yaml:"attributes" json:"attributes"`
	Epochs        []Epoch                              `yaml:"epochs" json:"epochs"`
	Profiles      map[AnalysisType]AnalysisProfile     `yaml:"profiles" json:"profiles"`
	Mansions      map[int]map[compass.Position]Mansion `yaml:"mansions" json:"mansions"`
	MansionScores map[Mansion]int                      `yaml:"mansion_scores" json:"mansion_scores"`
	CenterQuality int                                  `yaml:"center_quality" json:"center_quality"`
	HomeStars     map[compass.Position]int             `yaml:"home_stars" json:"home_stars"`
	Palaces       map[compass.Position]Element         `yaml:"palaces" json:"palaces"`
	NatureScores  map[Nature]int                       `yaml:"nature_scores" json:"nature_scores"`
	Affinity      AffinityScores                       `yaml:"affinity" json:"affinity"`
	EventFit      EventFitScores                       `yaml:"event_fit" json:"event_fit"`
	Events        map[string]EventProfile              `yaml:"events" json:"events"`
	Corners       map[CornerKind]CornerTarget          `yaml:"corners" json:"corners"`
	Templates     map[string]map[string]string         `yaml:"templates" json:"templates"`
}
