package domain

import "time"

// Record carries the fields every catalog document shares.
// It is embedded in Book and Magazine.
type Record struct {
	CreatedAt time.Time `json:"created_at" msgpack:"created_at"`
	UpdatedAt time.Time `json:"updated_at" msgpack:"updated_at"`
	ID        string    `json:"id" msgpack:"id"`
	// Seq is assigned by the store on insert and defines store order.
	Seq uint64 `json:"seq" msgpack:"seq"`
}

// Touch updates the UpdatedAt timestamp to the current time.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now()
}

// InitTimestamps sets both CreatedAt and UpdatedAt to now.
// Call this when creating a new record.
func (r *Record) InitTimestamps() {
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
}

// Carry copies store-owned fields from a previous version of the record.
// Replace keeps identity, creation time and store order.
func (r *Record) Carry(prev *Record) {
	r.ID = prev.ID
	r.Seq = prev.Seq
	r.CreatedAt = prev.CreatedAt
}
