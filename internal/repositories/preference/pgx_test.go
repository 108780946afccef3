package preference

import (
	"strings"
	"testing"
	"time"

	"github.com/orgball2608/wallify-bot/internal/domain"
)

func TestSelectQuery(t *testing.T) {
	query, args, err := selectQuery(42)
	if err != nil {
		t.Fatal(err)
	}
	want := "SELECT chat_id, category, search_term, updated_at FROM chat_preferences WHERE chat_id = $1"
	if query != want {
		t.Errorf("query = %q", query)
	}
	if len(args) != 1 || args[0] != int64(42) {
		t.Errorf("args = %v", args)
	}
}

func TestUpsertQuery(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	query, args, err := upsertQuery(domain.Preference{
		ChatID:     7,
		Category:   domain.CategoryDesktop,
		SearchTerm: "Ocean",
		UpdatedAt:  at,
	})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(query, "INSERT INTO chat_preferences (chat_id,category,search_term,updated_at) VALUES ($1,$2,$3,$4)") {
		t.Errorf("query = %q", query)
	}
	if !strings.Contains(query, "ON CONFLICT (chat_id) DO UPDATE SET category = EXCLUDED.category") {
		t.Errorf("missing upsert clause: %q", query)
	}
	if len(args) != 4 || args[1] != "desktop" || args[2] != "Ocean" || args[3] != at {
		t.Errorf("args = %v", args)
	}
}
