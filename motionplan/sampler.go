package motionplan

import (
	"math/rand"

	"github.com/golang/geo/r3"

	"go.viam.com/rrtplan/spatialmath"
)

// Sampler produces candidate points for the planner to grow toward.
type Sampler interface {
	Sample() r3.Vector
}

// NewSampler returns the sampler selected by settings: uniform over the domain, or biased toward
// the cell of the domain containing goal when settings.Quadrants is set. All randomness comes
// from rng.
func NewSampler(domain spatialmath.Domain, goal r3.Vector, settings *RRTSettings, rng *rand.Rand) Sampler {
	uniform := &uniformSampler{domain: domain, rng: rng}
	if settings == nil || !settings.Quadrants {
		return uniform
	}
	var cells []spatialmath.Domain
	if settings.LegacyQuadrantPartition {
		cells = domain.LegacyPartition(settings.NumQuadrantsPerAxis)
	} else {
		cells = domain.Partition(settings.NumQuadrantsPerAxis)
	}
	return &quadrantSampler{
		uniform: uniform,
		cells:   cells,
		goal:    goal,
		prob:    settings.QuadrantProb,
		rng:     rng,
	}
}

type uniformSampler struct {
	domain spatialmath.Domain
	rng    *rand.Rand
}

func (s *uniformSampler) Sample() r3.Vector {
	return s.domain.Sample(s.rng)
}

// quadrantSampler draws from the goal's cell with probability prob and from the whole domain
// otherwise.
type quadrantSampler struct {
	uniform *uniformSampler
	cells   []spatialmath.Domain
	goal    r3.Vector
	prob    float64
	rng     *rand.Rand

	located  bool
	goalCell int
}

func (s *quadrantSampler) Sample() r3.Vector {
	if cell := s.locate(); cell >= 0 && s.rng.Float64() < s.prob {
		return s.cells[cell].Sample(s.rng)
	}
	return s.uniform.Sample()
}

// locate finds the goal's cell on first use and caches it. -1 means the goal lies in no cell and
// sampling stays uniform.
func (s *quadrantSampler) locate() int {
	if !s.located {
		s.goalCell = spatialmath.FindContaining(s.cells, s.goal)
		s.located = true
	}
	return s.goalCell
}
