package amqp

import (
	"encoding/json"
	"time"
)

// StatementImportedMessage announces that one statement file was parsed and
// appended to the store. It carries only identifiers and counts; the worker
// fetches the batch contents from the database.
type StatementImportedMessage struct {
	BatchID   string    `json:"batch_id"`
	Source    string    `json:"source"`
	Imported  int       `json:"imported"`
	Skipped   int       `json:"skipped"`
	Timestamp time.Time `json:"timestamp"`
}

func NewStatementImportedMessage(batchID, source string, imported, skipped int) *StatementImportedMessage {
	return &StatementImportedMessage{
		BatchID:   batchID,
		Source:    source,
		Imported:  imported,
		Skipped:   skipped,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *StatementImportedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// StatementImportedMessageFromJSON creates a message from JSON bytes.
func StatementImportedMessageFromJSON(data []byte) (*StatementImportedMessage, error) {
	var msg StatementImportedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
