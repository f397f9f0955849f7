package geoseed

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costamaya/backoffice/internal/stub"
)

// writeLayer creates a point shapefile whose attribute table holds the given
// rows, mimicking the INEGI layer layout.
func writeLayer(t *testing.T, path string, fields []shp.Field, rows [][]string) {
	t.Helper()
	w, err := shp.Create(path, shp.POINT)
	require.NoError(t, err)
	require.NoError(t, w.SetFields(fields))
	for _, row := range rows {
		n := w.Write(&shp.Point{X: -87.0, Y: 20.6})
		for col, value := range row {
			// Pad to the field width with spaces: go-shp zero-fills records,
			// but the DBF format (and real INEGI layers) space-pad values.
			padded := value + strings.Repeat(" ", int(fields[col].Size)-len(value))
			require.NoError(t, w.WriteAttribute(int(n), col, padded))
		}
	}
	w.Close()
}

func writeFixtures(t *testing.T, dir string) Sources {
	t.Helper()
	src := Sources{
		States:         filepath.Join(dir, "ent.shp"),
		Municipalities: filepath.Join(dir, "mun.shp"),
		Localities:     filepath.Join(dir, "loc.shp"),
	}
	writeLayer(t, src.States, []shp.Field{
		shp.StringField("CVE_ENT", 2),
		shp.StringField("NOMGEO", 60),
	}, [][]string{
		{"23", "Quintana Roo"},
		{"31", "Yucatán"},
	})
	writeLayer(t, src.Municipalities, []shp.Field{
		shp.StringField("CVE_ENT", 2),
		shp.StringField("CVE_MUN", 3),
		shp.StringField("NOMGEO", 60),
	}, [][]string{
		{"23", "005", "Benito Juárez"},
		{"23", "008", "Solidaridad"},
		{"31", "050", "Mérida"},
	})
	writeLayer(t, src.Localities, []shp.Field{
		shp.StringField("CVE_ENT", 2),
		shp.StringField("CVE_MUN", 3),
		shp.StringField("CVE_LOC", 4),
		shp.StringField("NOMGEO", 60),
	}, [][]string{
		{"23", "005", "0001", "Cancún"},
		{"23", "008", "0001", "Playa del Carmen"},
	})
	return src
}

func TestBuildDerivesStableIdentifiers(t *testing.T) {
	src := writeFixtures(t, t.TempDir())

	catalog, err := Build(src)
	require.NoError(t, err)

	require.Len(t, catalog.States, 2)
	assert.Equal(t, int64(23), catalog.States[0].ID)
	assert.Equal(t, "Quintana Roo", catalog.States[0].Name)

	require.Len(t, catalog.Municipalities, 3)
	benito := catalog.Municipalities[0]
	assert.Equal(t, int64(23005), benito.ID)
	assert.Equal(t, int64(23), benito.StateID)

	require.Len(t, catalog.Localities, 2)
	cancun := catalog.Localities[0]
	assert.Equal(t, int64(230050001), cancun.ID)
	assert.Equal(t, int64(23005), cancun.MunicipalityID)
	assert.Equal(t, "Cancún", cancun.Name)
}

func TestBuildStatesOnly(t *testing.T) {
	src := writeFixtures(t, t.TempDir())
	src.Municipalities = ""
	src.Localities = ""

	catalog, err := Build(src)
	require.NoError(t, err)
	assert.Len(t, catalog.States, 2)
	assert.Empty(t, catalog.Municipalities)
	assert.Empty(t, catalog.Localities)
}

func TestBuildRejectsMissingAttribute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.shp")
	writeLayer(t, path, []shp.Field{shp.StringField("NAME", 20)}, [][]string{{"X"}})

	_, err := Build(Sources{States: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CVE_ENT")
}

func TestWriteCatalogRoundTrip(t *testing.T) {
	src := writeFixtures(t, t.TempDir())
	catalog, err := Build(src)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "geography.json")
	require.NoError(t, WriteCatalog(catalog, out))

	loaded, err := stub.LoadCatalog(out)
	require.NoError(t, err)
	assert.Equal(t, catalog, loaded)
}
