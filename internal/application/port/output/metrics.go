package output

import "web-assistant/internal/domain/entity"

type MetricsPort interface {
	ObserveTurn(intent entity.Intent, bucket entity.Bucket)
	ObserveFill(strategy entity.Strategy, outcome entity.Outcome)
}
