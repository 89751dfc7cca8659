package models

// Book represents one source textbook in the corpus catalog.
type Book struct {
	Name string `yaml:"name" json:"name"` // unique key, also the on-disk artifact prefix
	URL  string `yaml:"url" json:"url"`   // direct download location
}

// Passage is the atomic retrieval unit: a bounded span of normalized
// textbook prose plus the structural context it was cut from.
type Passage struct {
	Text          string `json:"text"`
	SequenceIndex int    `json:"sequence_index"` // zero-based position within the book
	Chapter       string `json:"chapter"`        // nearest preceding chapter heading, "Introduction" by default
	Section       string `json:"section"`        // nearest preceding section heading, may be empty
	Book          string `json:"book"`           // back-reference to Book.Name
}

// StoredRecord is the persisted unit handed to the vector store.
// ID is content-addressed, so re-upserting an unchanged passage
// overwrites the prior record instead of duplicating it.
type StoredRecord struct {
	ID       string         `json:"id"`
	Vector   []float32      `json:"vector"`
	Metadata RecordMetadata `json:"metadata"`
}

// RecordMetadata carries the passage's structural labels and a
// length-capped copy of its text alongside the vector.
type RecordMetadata struct {
	Book    string `json:"book"`
	Chapter string `json:"chapter"`
	Section string `json:"section"`
	ChunkID int    `json:"chunk_id"`
	Text    string `json:"text"`
}
