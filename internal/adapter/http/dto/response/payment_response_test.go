package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
)

func TestFromIdempotencyKey(t *testing.T) {
	now := time.Now().UTC()

	t.Run("completed carries receipt", func(t *testing.T) {
		res := FromIdempotencyKey(entities.IdempotencyKey{
			Key:          "abcd1234abcd1234",
			BookingID:    "b-1",
			Status:       entities.IdempotencyStatusCompleted,
			ResponseData: json.RawMessage(`{"transaction_id":"tx-1"}`),
			CreatedAt:    now,
			ExpiresAt:    now.Add(24 * time.Hour),
			CompletedAt:  &now,
		})
		if res.Status != "completed" || string(res.Receipt) != `{"transaction_id":"tx-1"}` {
			t.Fatalf("unexpected response: %+v", res)
		}
	})

	t.Run("pending hides receipt and lease", func(t *testing.T) {
		res := FromIdempotencyKey(entities.IdempotencyKey{
			Key:     "abcd1234abcd1234",
			Status:  entities.IdempotencyStatusPending,
			LeaseID: "secret-lease",
		})
		b, _ := json.Marshal(res)
		if res.Receipt != nil {
			t.Fatalf("pending key must not expose a receipt")
		}
		var m map[string]any
		_ = json.Unmarshal(b, &m)
		if _, ok := m["lease_id"]; ok {
			t.Fatalf("lease id leaked: %s", b)
		}
	})
}
