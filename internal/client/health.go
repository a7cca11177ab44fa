package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Test199T/vita-wise-ai-sub001/internal/domain"
)

// GetHealthRecords fetches the user's tracked health metrics.
// Concurrent calls are coalesced into a single in-flight request.
func (c *Client) GetHealthRecords(ctx context.Context) ([]domain.HealthRecord, error) {
	v, err, _ := c.flight.Do(opHealthRead, func() (any, error) {
		return c.resolve(ctx, opHealthRead, healthReadCandidates, nil)
	})
	if err != nil {
		return nil, err
	}

	var records []domain.HealthRecord
	if err := decodeList(v.([]byte), &records); err != nil {
		return nil, fmt.Errorf("failed to decode health records: %w", err)
	}
	return records, nil
}

// GetActivityLog fetches the user's activity log entries.
// Concurrent calls are coalesced into a single in-flight request.
func (c *Client) GetActivityLog(ctx context.Context) ([]domain.ActivityLogEntry, error) {
	v, err, _ := c.flight.Do(opLogsRead, func() (any, error) {
		return c.resolve(ctx, opLogsRead, logsReadCandidates, nil)
	})
	if err != nil {
		return nil, err
	}

	var entries []domain.ActivityLogEntry
	if err := decodeList(v.([]byte), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity log: %w", err)
	}
	return entries, nil
}

// decodeList decodes a JSON array that some backend versions serve bare and
// others wrap under a "data" key.
func decodeList(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err == nil {
		return nil
	}
	wrapper := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return err
	}
	return json.Unmarshal(wrapper.Data, v)
}
