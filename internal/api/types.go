package api

import "github.com/onlinefem/onlinefem/internal/store"

// FEMRecord is the JSON shape of a contact record.
type FEMRecord struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func recordFromModel(f *store.FEM) FEMRecord {
	return FEMRecord{ID: f.ID, Name: f.Name, Email: f.Email, Message: f.Message}
}

// ListRecordsResponse is a page of records.
type ListRecordsResponse struct {
	Items []FEMRecord `json:"items"`
	Total int64       `json:"total"`
}

// UpsertRecordRequest carries create and update payloads. Nil fields are
// left untouched on PATCH.
type UpsertRecordRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Message *string `json:"message"`
}

// OutResponse is the forwarding endpoint's reply.
type OutResponse struct {
	Out any `json:"out"`
}
