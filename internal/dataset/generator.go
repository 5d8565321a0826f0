// Package dataset produces synthetic (description, parameter-vector)
// training pairs for every supported shape kind.
package dataset

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/monicapserrano/text-to-cad/internal/domain"
)

// sizeBucket is a qualitative size with its uniform sampling range.
type sizeBucket struct {
	name string
	lo   float64
	hi   float64
}

// Most kinds share one bucket table; spheres use a tighter one so the
// generated radii stay in a printable range.
var (
	defaultBuckets = []sizeBucket{
		{"small", 1, 10},
		{"medium", 11, 50},
		{"large", 51, 100},
	}
	sphereBuckets = []sizeBucket{
		{"small", 1, 3},
		{"medium", 4, 6},
		{"large", 7, 10},
	}
)

// Alternative wordings per parameter. A "diameter" style term doubles
// the rendered value; the stored parameters always keep the canonical
// radius form.
var (
	cylinderRadiusTerms = []string{"radius", "diameter"}
	cylinderHeightTerms = []string{"height", "tall"}
	sphereRadiusTerms   = []string{"radius", "diameter"}
	circleRadiusTerms   = []string{"radius", "diameter"}
	coneBaseTerms       = []string{"base radius", "base diameter"}
	coneTopTerms        = []string{"top radius", "top diameter"}
	torusMajorTerms     = []string{"major radius", "outer radius"}
	torusMinorTerms     = []string{"minor radius", "inner radius"}
)

// fileNames maps a generator name to its dataset file. Boxes and cubes
// share one file since they share a generator.
var fileNames = map[string]string{
	"plane":    "plane_dataset.json",
	"box":      "box_and_cube_dataset.json",
	"cylinder": "cylinder_dataset.json",
	"cone":     "cone_dataset.json",
	"sphere":   "sphere_dataset.json",
	"torus":    "torus_dataset.json",
	"helix":    "helix_dataset.json",
	"circle":   "circle_dataset.json",
}

// Names lists the supported generator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(fileNames))
	for n := range fileNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// FileName returns the dataset file name for a generator.
func FileName(name string) (string, error) {
	f, ok := fileNames[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedShape, name)
	}
	return f, nil
}

// Generator produces synthetic training examples. Not safe for
// concurrent use; each run owns its source.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator drawing from rng.
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate produces n examples for the named generator. The box
// generator emits a mix of boxes and cubes.
func (g *Generator) Generate(name string, n int) ([]domain.TrainingExample, error) {
	if n <= 0 {
		return nil, fmt.Errorf("dataset: cannot generate %d datapoints", n)
	}

	var sample func() domain.TrainingExample
	switch name {
	case "plane":
		sample = g.plane
	case "box", "cube":
		sample = g.boxOrCube
	case "cylinder":
		sample = g.cylinder
	case "cone":
		sample = g.cone
	case "sphere":
		sample = g.sphere
	case "torus":
		sample = g.torus
	case "helix":
		sample = g.helix
	case "circle":
		sample = g.circle
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedShape, name)
	}

	examples := make([]domain.TrainingExample, n)
	for i := range examples {
		examples[i] = sample()
	}
	return examples, nil
}

func (g *Generator) plane() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	length := g.uniform(b.lo, b.hi)
	width := g.uniform(b.lo, b.hi)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s plane with a length and width.", b.name)
	} else {
		description = fmt.Sprintf(
			"A plane with a length of %.2f units and width of %.2f units.",
			length, width,
		)
	}

	return example("plane", description,
		domain.Parameters{Shape: domain.KindPlane, Length: length, Width: width})
}

func (g *Generator) boxOrCube() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	if g.rng.Intn(2) == 0 {
		length := g.uniform(b.lo, b.hi)
		width := g.uniform(b.lo, b.hi)
		height := g.uniform(b.lo, b.hi)

		var description string
		if g.qualitative() {
			description = fmt.Sprintf("A %s box with a length, width, and height.", b.name)
		} else {
			description = fmt.Sprintf(
				"A box with a length of %.2f units, a width of %.2f units, and a height of %.2f units.",
				length, width, height,
			)
		}
		return example("box", description,
			domain.Parameters{Shape: domain.KindBox, Length: length, Width: width, Height: height})
	}

	side := g.uniform(b.lo, b.hi)
	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s cube with a length, width, and height.", b.name)
	} else {
		description = fmt.Sprintf(
			"A cube with a length, width, and height of %.2f units.", side)
	}
	return example("cube", description,
		domain.Parameters{Shape: domain.KindCube, Length: side, Width: side, Height: side})
}

func (g *Generator) cylinder() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	radius := g.uniform(b.lo, b.hi)
	height := g.uniform(b.lo, b.hi)
	radiusTerm := g.pick(cylinderRadiusTerms)
	heightTerm := g.pick(cylinderHeightTerms)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s cylinder with a %s and %s.", b.name, radiusTerm, heightTerm)
	} else {
		description = fmt.Sprintf(
			"A cylinder with a %s of %.2f units and %s of %.2f units.",
			radiusTerm, rendered(radius, radiusTerm), heightTerm, height,
		)
	}

	return example("cylinder", description,
		domain.Parameters{Shape: domain.KindCylinder, Radius: radius, Height: height})
}

func (g *Generator) cone() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	baseRadius := g.uniform(b.lo, b.hi)
	// The top must stay strictly below the base.
	topRadius := g.uniform(0.1, baseRadius)
	height := g.uniform(b.lo, b.hi)
	baseTerm := g.pick(coneBaseTerms)
	topTerm := g.pick(coneTopTerms)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s cone with a %s, %s, and height.", b.name, baseTerm, topTerm)
	} else {
		description = fmt.Sprintf(
			"A cone with a %s of %.2f units, a %s of %.2f units, and a height of %.2f units.",
			baseTerm, rendered(baseRadius, baseTerm), topTerm, rendered(topRadius, topTerm), height,
		)
	}

	return example("cone", description, domain.Parameters{
		Shape: domain.KindCone, Radius1: baseRadius, Radius2: topRadius, Height: height,
	})
}

func (g *Generator) sphere() domain.TrainingExample {
	b := g.bucket(sphereBuckets)
	radius := g.uniform(b.lo, b.hi)
	radiusTerm := g.pick(sphereRadiusTerms)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s sphere with a %s.", b.name, radiusTerm)
	} else {
		description = fmt.Sprintf(
			"A sphere with a %s of %.2f units.", radiusTerm, rendered(radius, radiusTerm))
	}

	return example("sphere", description,
		domain.Parameters{Shape: domain.KindSphere, Radius: radius})
}

func (g *Generator) torus() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	majorRadius := g.uniform(b.lo, b.hi)
	// The minor radius must stay strictly below the major radius.
	minorRadius := g.uniform(1, majorRadius-0.1)
	majorTerm := g.pick(torusMajorTerms)
	minorTerm := g.pick(torusMinorTerms)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s torus with a %s and a %s.", b.name, majorTerm, minorTerm)
	} else {
		description = fmt.Sprintf(
			"A torus with a %s of %.2f units and a %s of %.2f units.",
			majorTerm, majorRadius, minorTerm, minorRadius,
		)
	}

	return example("torus", description, domain.Parameters{
		Shape: domain.KindTorus, Radius1: majorRadius, Radius2: minorRadius,
	})
}

func (g *Generator) helix() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	pitch := g.uniform(b.lo, b.hi)
	height := g.uniform(b.lo, b.hi)
	radius := g.uniform(b.lo, b.hi)
	angle := g.uniform(0, 360)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s helix with a pitch, height, radius, and angle.", b.name)
	} else {
		description = fmt.Sprintf(
			"A helix with a pitch of %.2f units, a height of %.2f units, a radius of %.2f units, and an angle of %.2f degrees.",
			pitch, height, radius, angle,
		)
	}

	return example("helix", description, domain.Parameters{
		Shape: domain.KindHelix, Pitch: pitch, Height: height, Radius: radius, Angle: angle,
	})
}

func (g *Generator) circle() domain.TrainingExample {
	b := g.bucket(defaultBuckets)
	radius := g.uniform(b.lo, b.hi)
	radiusTerm := g.pick(circleRadiusTerms)

	var description string
	if g.qualitative() {
		description = fmt.Sprintf("A %s circle with a %s.", b.name, radiusTerm)
	} else {
		description = fmt.Sprintf(
			"A circle with a %s of %.2f units.", radiusTerm, rendered(radius, radiusTerm))
	}

	return example("circle", description,
		domain.Parameters{Shape: domain.KindCircle, Radius: radius})
}

func example(shape, description string, p domain.Parameters) domain.TrainingExample {
	return domain.TrainingExample{
		Shape:         shape,
		Description:   description,
		CADParameters: p.Vector(),
	}
}

// rendered doubles a canonical radius when the chosen term speaks in
// diameters.
func rendered(radius float64, term string) float64 {
	switch term {
	case "diameter", "base diameter", "top diameter":
		return radius * 2
	}
	return radius
}

func (g *Generator) bucket(buckets []sizeBucket) sizeBucket {
	return buckets[g.rng.Intn(len(buckets))]
}

func (g *Generator) pick(terms []string) string {
	return terms[g.rng.Intn(len(terms))]
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}

// qualitative decides, fifty-fifty, between a qualitative description
// naming only the size bucket and a quantitative one embedding numbers.
func (g *Generator) qualitative() bool {
	return g.rng.Float64() < 0.5
}
