package model

// Document is the metadata row for one ingested unstructured document. The
// raw text itself lives in the filestore under StorageKey and is loaded
// lazily; rows are immutable after ingestion.
type Document struct {
	ID         int64  `json:"id"`
	DocType    string `json:"doc_type"`
	StorageKey string `json:"storage_key"`
	IngestedAt int64  `json:"ingested_at"`
	Metadata   string `json:"json_metadata,omitempty"`
}

type DocumentLink struct {
	DocID      int64  `json:"doc_id"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
}
