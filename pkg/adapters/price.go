package adapters

import (
	"github.com/eco-tools/cpi-pulse/pkg/models/api"
	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/eco-tools/cpi-pulse/pkg/models/store"
)

// MapPriceRecordToObservation keys the observation by product name, which is
// the entity identity the engine works with.
func MapPriceRecordToObservation(record store.PriceRecord) domain.Observation {
	return domain.Observation{
		EntityID:  record.Product,
		Timestamp: record.Date,
		Level:     record.Value,
	}
}

func MapPriceRecordsToObservations(records []store.PriceRecord) []domain.Observation {
	observations := make([]domain.Observation, 0, len(records))
	for _, record := range records {
		observations = append(observations, MapPriceRecordToObservation(record))
	}
	return observations
}

func MapPriceAttributeToApi(attr store.PriceAttribute) api.Product {
	return api.Product{
		Variable:           attr.Variable,
		Name:               attr.VariableName,
		Product:            attr.Product,
		SeasonallyAdjusted: attr.SeasonallyAdjusted,
		Frequency:          attr.Frequency,
		Unit:               attr.Unit,
	}
}
