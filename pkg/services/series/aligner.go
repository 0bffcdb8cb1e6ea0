package series

import (
	"sort"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
)

// AlignByEntity partitions observations by entity and sorts each partition by
// timestamp ascending. Entities with fewer than two observations are dropped:
// nothing can be derived from a single point. Duplicate timestamps within an
// entity are a caller precondition; ordering among ties is unspecified.
func AlignByEntity(observations []domain.Observation) map[string][]domain.Observation {
	byEntity := make(map[string][]domain.Observation)
	for _, obs := range observations {
		byEntity[obs.EntityID] = append(byEntity[obs.EntityID], obs)
	}

	aligned := make(map[string][]domain.Observation, len(byEntity))
	for entity, series := range byEntity {
		if len(series) < 2 {
			continue
		}
		sort.Slice(series, func(i, j int) bool {
			return series[i].Timestamp.Before(series[j].Timestamp)
		})
		aligned[entity] = series
	}
	return aligned
}

// Align sorts a single entity's series by timestamp ascending. Returns nil
// when fewer than two observations exist.
func Align(observations []domain.Observation) []domain.Observation {
	if len(observations) < 2 {
		return nil
	}
	sorted := make([]domain.Observation, len(observations))
	copy(sorted, observations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
