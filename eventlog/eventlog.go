// Package eventlog records ledger notifications as append-only records
// with stable IDs, and exports them as JSONL for external tooling.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/artmint/go-artmint/ledger"
)

// Record is one logged notification. Fields holds the event payload as
// strings keyed by the event's own field names.
type Record struct {
	ID        string            `json:"id"`
	Seq       int               `json:"seq"`
	Kind      string            `json:"kind"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields"`
}

// Log collects ledger events. It implements ledger.Sink and is safe for
// concurrent use.
type Log struct {
	mu      sync.Mutex
	now     func() time.Time
	records []Record
}

// New creates an empty log.
func New() *Log {
	return &Log{now: time.Now}
}

// Emit appends a record for ev, assigning it a UUID and the next
// sequence number.
func (g *Log) Emit(ev ledger.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.records = append(g.records, Record{
		ID:        uuid.NewString(),
		Seq:       len(g.records) + 1,
		Kind:      ev.Kind(),
		Timestamp: g.now().UTC(),
		Fields:    eventFields(ev),
	})
}

func eventFields(ev ledger.Event) map[string]string {
	switch e := ev.(type) {
	case ledger.TransferEvent:
		return map[string]string{
			"from":     e.From.Hex(),
			"to":       e.To.Hex(),
			"token_id": fmt.Sprintf("%d", e.TokenID),
		}
	case ledger.ApprovalEvent:
		return map[string]string{
			"owner":    e.Owner.Hex(),
			"approved": e.Approved.Hex(),
			"token_id": fmt.Sprintf("%d", e.TokenID),
		}
	case ledger.ApprovalForAllEvent:
		return map[string]string{
			"owner":    e.Owner.Hex(),
			"operator": e.Operator.Hex(),
			"approved": fmt.Sprintf("%t", e.Approved),
		}
	}
	return nil
}

// Records returns a copy of all logged records in emission order.
func (g *Log) Records() []Record {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Record, len(g.records))
	copy(out, g.records)
	return out
}

// Len returns the number of logged records.
func (g *Log) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}

// WriteJSONL writes every record to w, one JSON object per line.
func (g *Log) WriteJSONL(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, record := range g.Records() {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("encode record %d: %w", record.Seq, err)
		}
	}
	return nil
}

// ReadJSONL parses records previously written with WriteJSONL.
func ReadJSONL(r io.Reader) ([]Record, error) {
	var records []Record
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return records, nil
}
