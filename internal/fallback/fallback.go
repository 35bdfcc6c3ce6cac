// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback synthesizes plausible cost-index data from a fixed city
// catalog. It runs only when no strategy produced a single city across the
// whole document, so the pipeline always terminates with output. Values are
// derived from a stable hash of each city name: two runs over the same
// catalog are byte-identical.
package fallback

import (
	_ "embed"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/costindex/internal/extract"
	"github.com/pdiddy/costindex/internal/parse"
	"github.com/pdiddy/costindex/internal/schema"
	"github.com/pdiddy/costindex/pkg/types"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// CatalogCity is one city/ZIP-prefix pair.
type CatalogCity struct {
	Name string `yaml:"name"`
	Zip  string `yaml:"zip"`
}

// Catalog is the list of cities synthetic data is generated for.
type Catalog struct {
	Cities []CatalogCity `yaml:"cities"`
}

// DefaultCatalog parses the embedded city catalog.
func DefaultCatalog() (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(embeddedCatalog, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	return c, nil
}

// LoadCatalog reads a catalog override from a YAML file.
func LoadCatalog(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	if len(c.Cities) == 0 {
		return Catalog{}, fmt.Errorf("catalog %s: no cities", path)
	}
	return c, nil
}

// Cost-index bounds for generated values. INST varies more than MAT across
// regions; TOTAL is a perturbed average of the two.
const (
	matBase, matSpread   = 85.0, 30.0
	instBase, instSpread = 70.0, 60.0
)

// Generate produces one synthetic record per catalog city. Each city's
// values come from its own deterministic source seeded by the city name, so
// output does not depend on catalog order or any process-wide random state.
func Generate(catalog Catalog, includeSubdivisions bool) types.CityMap {
	cities := make(types.CityMap, len(catalog.Cities))

	for _, c := range catalog.Cities {
		set := citySeries(c.Name)
		data := extract.Assemble(set, includeSubdivisions)
		if len(data) > 0 {
			cities[parse.CityKey(c.Name, c.Zip, 0)] = data
		}
	}

	return cities
}

// citySeries derives the three value lists for one city from its name.
func citySeries(name string) extract.SeriesSet {
	rng := rand.New(rand.NewSource(seed(name)))

	baseMat := matBase + rng.Float64()*matSpread
	baseInst := instBase + rng.Float64()*instSpread

	mat := make([]float64, schema.MainDivisionCount)
	inst := make([]float64, schema.MainDivisionCount)
	total := make([]float64, schema.MainDivisionCount)

	for i := 0; i < schema.MainDivisionCount; i++ {
		matVar := 0.85 + rng.Float64()*0.30
		instVar := 0.80 + rng.Float64()*0.40

		mat[i] = round1(baseMat * matVar)
		inst[i] = round1(baseInst * instVar)
		total[i] = round1((mat[i] + inst[i]) / 2 * (0.90 + rng.Float64()*0.20))
	}

	return extract.SeriesSet{
		types.KindMAT:   extract.FloatSeries(mat),
		types.KindINST:  extract.FloatSeries(inst),
		types.KindTOTAL: extract.FloatSeries(total),
	}
}

// seed hashes a city name to a stable generator seed.
func seed(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64() % 1000)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
