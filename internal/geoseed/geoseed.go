// Package geoseed builds the sandbox geography catalog from INEGI marco
// geoestadístico shapefiles. The attribute tables carry the official CVE_*
// codes and NOMGEO names; geometry is ignored.
package geoseed

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/stub"
)

// Sources are the .shp paths for the three layers. Municipalities and
// localities are optional; the catalog just ends at the deepest layer given.
type Sources struct {
	States         string
	Municipalities string
	Localities     string
}

// Identifiers derive from the INEGI codes so reruns are stable:
// state = CVE_ENT, municipality = state*1000 + CVE_MUN,
// locality = municipality*10000 + CVE_LOC.

// Build reads the shapefiles into a catalog.
func Build(src Sources) (stub.Catalog, error) {
	var c stub.Catalog

	if src.States == "" {
		return c, fmt.Errorf("a states shapefile is required")
	}

	err := eachRecord(src.States, []string{"CVE_ENT", "NOMGEO"}, func(attrs []string) error {
		ent, err := parseCode(attrs[0])
		if err != nil {
			return fmt.Errorf("state CVE_ENT %q: %w", attrs[0], err)
		}
		c.States = append(c.States, models.State{ID: ent, Name: attrs[1]})
		return nil
	})
	if err != nil {
		return c, err
	}
	sort.Slice(c.States, func(i, j int) bool { return c.States[i].ID < c.States[j].ID })

	if src.Municipalities != "" {
		err = eachRecord(src.Municipalities, []string{"CVE_ENT", "CVE_MUN", "NOMGEO"}, func(attrs []string) error {
			ent, err := parseCode(attrs[0])
			if err != nil {
				return fmt.Errorf("municipality CVE_ENT %q: %w", attrs[0], err)
			}
			mun, err := parseCode(attrs[1])
			if err != nil {
				return fmt.Errorf("municipality CVE_MUN %q: %w", attrs[1], err)
			}
			c.Municipalities = append(c.Municipalities, models.Municipality{
				ID:      ent*1000 + mun,
				Name:    attrs[2],
				StateID: ent,
			})
			return nil
		})
		if err != nil {
			return c, err
		}
		sort.Slice(c.Municipalities, func(i, j int) bool { return c.Municipalities[i].ID < c.Municipalities[j].ID })
	}

	if src.Localities != "" {
		err = eachRecord(src.Localities, []string{"CVE_ENT", "CVE_MUN", "CVE_LOC", "NOMGEO"}, func(attrs []string) error {
			ent, err := parseCode(attrs[0])
			if err != nil {
				return fmt.Errorf("locality CVE_ENT %q: %w", attrs[0], err)
			}
			mun, err := parseCode(attrs[1])
			if err != nil {
				return fmt.Errorf("locality CVE_MUN %q: %w", attrs[1], err)
			}
			loc, err := parseCode(attrs[2])
			if err != nil {
				return fmt.Errorf("locality CVE_LOC %q: %w", attrs[2], err)
			}
			municipalityID := ent*1000 + mun
			c.Localities = append(c.Localities, models.Locality{
				ID:             municipalityID*10000 + loc,
				Name:           attrs[3],
				MunicipalityID: municipalityID,
			})
			return nil
		})
		if err != nil {
			return c, err
		}
		sort.Slice(c.Localities, func(i, j int) bool { return c.Localities[i].ID < c.Localities[j].ID })
	}

	return c, nil
}

// WriteCatalog writes the catalog as JSON, the format stub.LoadCatalog reads.
func WriteCatalog(c stub.Catalog, path string) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// eachRecord walks a shapefile's attribute table, passing the named DBF
// columns of each record to fn.
func eachRecord(path string, columns []string, fn func(attrs []string) error) error {
	shape, err := shp.Open(path)
	if err != nil {
		return fmt.Errorf("opening shapefile %s: %w", path, err)
	}
	defer shape.Close()

	indices := make([]int, len(columns))
	fields := shape.Fields()
	for i, col := range columns {
		indices[i] = -1
		for j, f := range fields {
			if strings.EqualFold(f.String(), col) {
				indices[i] = j
				break
			}
		}
		if indices[i] == -1 {
			return fmt.Errorf("shapefile %s: missing attribute %s", path, col)
		}
	}

	attrs := make([]string, len(columns))
	for shape.Next() {
		n, _ := shape.Shape()
		for i, idx := range indices {
			attrs[i] = strings.TrimSpace(shape.ReadAttribute(n, idx))
		}
		if err := fn(attrs); err != nil {
			return err
		}
	}
	return nil
}

// parseCode parses a zero-padded INEGI code like "023".
func parseCode(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("code must be positive")
	}
	return n, nil
}
