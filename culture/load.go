package culture

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// fileSchema is the YAML shape accepted by LoadDataset. All sections are
// optional; entries overlay the built-in tables by code/name.
type fileSchema struct {
	Regions    []Region    `yaml:"regions"`
	Blocs      []Bloc      `yaml:"blocs"`
	Frameworks []Framework `yaml:"frameworks"`
	Idioms     []string    `yaml:"idioms"`
}

// LoadDataset reads a YAML file and overlays its entries on the built-in
// tables. A region with a known code replaces the default profile; unknown
// codes are appended. Blocs and frameworks merge by name the same way;
// idioms are appended after de-duplication.
func LoadDataset(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read culture dataset: %w", err)
	}

	var overlay fileSchema
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse culture dataset %s: %w", path, err)
	}

	regions := mergeRegions(defaultRegions(), overlay.Regions)
	blocs := mergeBlocs(defaultBlocs(), overlay.Blocs)
	frameworks := mergeFrameworks(defaultFrameworks(), overlay.Frameworks)
	idioms := mergeIdioms(defaultIdioms(), overlay.Idioms)

	return NewDataset(regions, blocs, frameworks, idioms), nil
}

func mergeRegions(base, overlay []Region) []Region {
	index := make(map[string]int, len(base))
	for i, r := range base {
		index[strings.ToLower(r.Code)] = i
	}
	for _, r := range overlay {
		if i, ok := index[strings.ToLower(r.Code)]; ok {
			base[i] = r
			continue
		}
		index[strings.ToLower(r.Code)] = len(base)
		base = append(base, r)
	}
	return base
}

func mergeBlocs(base, overlay []Bloc) []Bloc {
	index := make(map[string]int, len(base))
	for i, b := range base {
		index[strings.ToLower(b.Name)] = i
	}
	for _, b := range overlay {
		if i, ok := index[strings.ToLower(b.Name)]; ok {
			base[i] = b
			continue
		}
		index[strings.ToLower(b.Name)] = len(base)
		base = append(base, b)
	}
	return base
}

func mergeFrameworks(base, overlay []Framework) []Framework {
	index := make(map[string]int, len(base))
	for i, f := range base {
		index[strings.ToLower(f.Name)] = i
	}
	for _, f := range overlay {
		if i, ok := index[strings.ToLower(f.Name)]; ok {
			base[i] = f
			continue
		}
		index[strings.ToLower(f.Name)] = len(base)
		base = append(base, f)
	}
	return base
}

func mergeIdioms(base, overlay []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, s := range base {
		seen[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range overlay {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		base = append(base, s)
	}
	return base
}
