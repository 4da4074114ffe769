package model

// DocumentVector caches the feature vector one model version produced for one
// document, so repeated scoring runs skip re-vectorizing unchanged text.
// Vectors from different model versions are never interchangeable.
type DocumentVector struct {
	DocID        int64     `json:"doc_id"`
	ModelVersion int64     `json:"model_version"`
	Features     []float32 `json:"features"`
	Ctime        int64     `json:"ctime"`
}
