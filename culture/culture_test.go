package culture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset_Shape(t *testing.T) {
	ds := DefaultDataset()

	assert.Len(t, ds.Regions(), 25)
	assert.Len(t, ds.Blocs(), 15)
	assert.Len(t, ds.Frameworks(), 11)
	assert.Len(t, ds.Idioms(), 20)
	assert.Equal(t, 51, ds.LensCount())
}

func TestDataset_Lookup(t *testing.T) {
	ds := DefaultDataset()

	byCode, ok := ds.Lookup("USA")
	require.True(t, ok)
	assert.Equal(t, "United States", byCode.Name)

	byAlias, ok := ds.Lookup("us")
	require.True(t, ok)
	assert.Equal(t, byCode.Code, byAlias.Code)

	byName, ok := ds.Lookup("  united kingdom ")
	require.True(t, ok)
	assert.Equal(t, "GBR", byName.Code)

	_, ok = ds.Lookup("Atlantis")
	assert.False(t, ok)
}

func TestDataset_LookupDimensions(t *testing.T) {
	ds := DefaultDataset()

	usa, ok := ds.Lookup("US")
	require.True(t, ok)
	assert.Equal(t, 40, usa.Dimensions.PowerDistance)
	assert.Equal(t, 91, usa.Dimensions.Individualism)
	assert.Equal(t, 91, usa.Dimensions.Get(DimIndividualism))
	assert.Equal(t, 0, usa.Dimensions.Get("no_such_dimension"))
}

func TestDataset_Framework(t *testing.T) {
	ds := DefaultDataset()

	fw, ok := ds.Framework("Religious")
	require.True(t, ok)
	assert.NotEmpty(t, fw.Keywords)
	assert.NotEmpty(t, fw.Guidance)

	_, ok = ds.Framework("astrology")
	assert.False(t, ok)
}

func TestLoadDataset_OverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "culture.yaml")
	doc := `
regions:
  - code: USA
    name: United States
    aliases: [US]
    dimensions:
      power_distance: 45
      individualism: 88
      masculinity: 62
      uncertainty_avoidance: 46
      long_term_orientation: 26
      indulgence: 68
  - code: XKX
    name: Kosovo
    dimensions:
      power_distance: 70
      individualism: 30
      masculinity: 50
      uncertainty_avoidance: 60
      long_term_orientation: 40
      indulgence: 45
idioms:
  - "a completely new idiom"
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	ds, err := LoadDataset(path)
	require.NoError(t, err)

	usa, ok := ds.Lookup("US")
	require.True(t, ok)
	assert.Equal(t, 45, usa.Dimensions.PowerDistance, "overlay replaces the default profile")

	kosovo, ok := ds.Lookup("Kosovo")
	require.True(t, ok)
	assert.Equal(t, "XKX", kosovo.Code)

	assert.Len(t, ds.Regions(), 26, "unknown codes append")
	assert.Contains(t, ds.Idioms(), "a completely new idiom")
	assert.Len(t, ds.Idioms(), 21)
}

func TestLoadDataset_MissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDataset_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions: [not: valid: yaml"), 0o644))

	_, err := LoadDataset(path)
	assert.Error(t, err)
}
