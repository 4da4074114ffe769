package model

// ModelState is the single durable record tracking the trained model. It is
// read and written as one unit. ModelVersion starts at 0 (nothing trained)
// and only ever increases; LastTrainedAt is nil until the first successful
// training run and then only ever advances.
type ModelState struct {
	ModelVersion  int64  `json:"model_version"`
	LastTrainedAt *int64 `json:"last_trained_at"`
}
