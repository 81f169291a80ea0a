// Package report appends a one-line summary artifact per placed order,
// consumed by downstream reporting. The file is append-only and never
// read back here.
package report

import (
	"encoding/json"
	"os"
	"sync"
)

type Summary struct {
	OrderID   string  `json:"orderId"`
	Customer  string  `json:"customer"`
	Total     float64 `json:"total"`
	Timestamp string  `json:"timestamp"`
}

type SummaryWriter struct {
	path string
	mu   sync.Mutex
}

func NewSummaryWriter(path string) *SummaryWriter { return &SummaryWriter{path: path} }

// Append writes one JSON line. Callers treat failures as log-and-move-on:
// a placed order is already durable in the store.
func (w *SummaryWriter) Append(s Summary) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(b, '\n'))
	return err
}
