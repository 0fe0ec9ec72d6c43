// Package culture holds the cultural reference data the engine scores
// against: per-country dimension profiles, regional bloc memberships and
// sensitivity frameworks with their keyword sets.
//
// A Dataset is immutable after construction. DefaultDataset returns the
// built-in tables (25 countries, 15 blocs, 11 frameworks); LoadDataset
// overlays user-supplied YAML on top of the defaults.
package culture

import "strings"

// Dimension names used across profiles and risk reports.
const (
	DimPowerDistance        = "power_distance"
	DimIndividualism        = "individualism"
	DimMasculinity          = "masculinity"
	DimUncertaintyAvoidance = "uncertainty_avoidance"
	DimLongTermOrientation  = "long_term_orientation"
	DimIndulgence           = "indulgence"
)

// DimensionNames lists all dimension names in canonical order.
var DimensionNames = []string{
	DimPowerDistance,
	DimIndividualism,
	DimMasculinity,
	DimUncertaintyAvoidance,
	DimLongTermOrientation,
	DimIndulgence,
}

// Dimensions holds one region's documented scores on the six cultural
// dimensions, each on a 0-100 scale.
type Dimensions struct {
	PowerDistance        int `yaml:"power_distance" json:"power_distance"`
	Individualism        int `yaml:"individualism" json:"individualism"`
	Masculinity          int `yaml:"masculinity" json:"masculinity"`
	UncertaintyAvoidance int `yaml:"uncertainty_avoidance" json:"uncertainty_avoidance"`
	LongTermOrientation  int `yaml:"long_term_orientation" json:"long_term_orientation"`
	Indulgence           int `yaml:"indulgence" json:"indulgence"`
}

// Get returns the score for a named dimension.
func (d Dimensions) Get(name string) int {
	switch name {
	case DimPowerDistance:
		return d.PowerDistance
	case DimIndividualism:
		return d.Individualism
	case DimMasculinity:
		return d.Masculinity
	case DimUncertaintyAvoidance:
		return d.UncertaintyAvoidance
	case DimLongTermOrientation:
		return d.LongTermOrientation
	case DimIndulgence:
		return d.Indulgence
	default:
		return 0
	}
}

// Region is one country-level cultural profile.
type Region struct {
	Code       string     `yaml:"code" json:"code"`
	Name       string     `yaml:"name" json:"name"`
	Aliases    []string   `yaml:"aliases,omitempty" json:"aliases,omitempty"`
	Dimensions Dimensions `yaml:"dimensions" json:"dimensions"`
	Blocs      []string   `yaml:"blocs,omitempty" json:"blocs,omitempty"`
}

// Bloc is a named grouping of regions sharing policy or cultural context.
type Bloc struct {
	Name    string   `yaml:"name" json:"name"`
	Members []string `yaml:"members" json:"members"` // region codes
}

// Framework is one sensitivity viewpoint with its trigger keyword set.
type Framework struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Guidance string   `yaml:"guidance" json:"guidance"`
}

// Dataset bundles all reference tables behind lookup helpers.
type Dataset struct {
	regions    []Region
	byKey      map[string]int // lowercase code/name/alias -> index into regions
	blocs      []Bloc
	frameworks []Framework
	idioms     []string
}

// NewDataset builds a Dataset with lookup indexes over the given tables.
func NewDataset(regions []Region, blocs []Bloc, frameworks []Framework, idioms []string) *Dataset {
	ds := &Dataset{
		regions:    regions,
		byKey:      make(map[string]int, len(regions)*3),
		blocs:      blocs,
		frameworks: frameworks,
		idioms:     idioms,
	}
	for i, r := range regions {
		ds.byKey[strings.ToLower(r.Code)] = i
		ds.byKey[strings.ToLower(r.Name)] = i
		for _, a := range r.Aliases {
			ds.byKey[strings.ToLower(a)] = i
		}
	}
	return ds
}

// Lookup resolves a region by code, name or alias (case-insensitive).
func (ds *Dataset) Lookup(region string) (Region, bool) {
	i, ok := ds.byKey[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return Region{}, false
	}
	return ds.regions[i], true
}

// Regions returns all region profiles.
func (ds *Dataset) Regions() []Region { return ds.regions }

// Blocs returns all bloc definitions.
func (ds *Dataset) Blocs() []Bloc { return ds.blocs }

// Frameworks returns all sensitivity frameworks.
func (ds *Dataset) Frameworks() []Framework { return ds.frameworks }

// Idioms returns the idiom watch list used by the deterministic idiom scan.
func (ds *Dataset) Idioms() []string { return ds.idioms }

// Framework resolves a sensitivity framework by name (case-insensitive).
func (ds *Dataset) Framework(name string) (Framework, bool) {
	for _, f := range ds.frameworks {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return Framework{}, false
}

// LensCount returns the total number of lenses: regions + blocs + frameworks.
func (ds *Dataset) LensCount() int {
	return len(ds.regions) + len(ds.blocs) + len(ds.frameworks)
}
