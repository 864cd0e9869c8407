package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "spins.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestRecordAndQuery(t *testing.T) {
	j := openTestJournal(t)
	ctx := context.Background()

	recs := []SpinRecord{
		{SessionID: "s1", SeedHash: "abc", SpinIndex: 0, Bet: "10", FreeSpin: false, TotalWin: "0", Balance: "9990", Outcome: []byte(`{"total_win":"0"}`)},
		{SessionID: "s1", SeedHash: "abc", SpinIndex: 1, Bet: "10", FreeSpin: true, TotalWin: "20.70", Balance: "10010.70", Outcome: []byte(`{"total_win":"20.70"}`)},
		{SessionID: "s2", SeedHash: "def", SpinIndex: 0, Bet: "1", FreeSpin: false, TotalWin: "0", Balance: "99", Outcome: []byte(`{}`)},
	}
	for i := range recs {
		if err := j.Record(ctx, &recs[i]); err != nil {
			t.Fatalf("Record(%d) error = %v", i, err)
		}
		if recs[i].ID == "" {
			t.Fatalf("Record(%d) did not assign an id", i)
		}
	}

	got, err := j.SessionSpins(ctx, "s1")
	if err != nil {
		t.Fatalf("SessionSpins() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("SessionSpins(s1) = %d records, want 2", len(got))
	}
	if got[0].SpinIndex != 0 || got[1].SpinIndex != 1 {
		t.Errorf("records out of spin order: %d, %d", got[0].SpinIndex, got[1].SpinIndex)
	}
	if !got[1].FreeSpin {
		t.Error("free_spin flag lost on round trip")
	}
	if got[1].TotalWin != "20.70" || got[1].Balance != "10010.70" {
		t.Errorf("monetary strings mangled: win %q balance %q", got[1].TotalWin, got[1].Balance)
	}
	if string(got[0].Outcome) != `{"total_win":"0"}` {
		t.Errorf("outcome JSON mangled: %s", got[0].Outcome)
	}

	n, err := j.SessionCount(ctx, "s1")
	if err != nil {
		t.Fatalf("SessionCount() error = %v", err)
	}
	if n != 2 {
		t.Errorf("SessionCount(s1) = %d, want 2", n)
	}
}

func TestSessionSpinsEmpty(t *testing.T) {
	j := openTestJournal(t)
	got, err := j.SessionSpins(context.Background(), "missing")
	if err != nil {
		t.Fatalf("SessionSpins() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records for unknown session, want 0", len(got))
	}
}

func TestSeedHash(t *testing.T) {
	if SeedHash(nil) != "" {
		t.Error("SeedHash(nil) should be empty")
	}
	a := SeedHash([]byte("seed-a"))
	b := SeedHash([]byte("seed-b"))
	if a == "" || b == "" || a == b {
		t.Errorf("seed hashes not distinct: %q vs %q", a, b)
	}
	if a != SeedHash([]byte("seed-a")) {
		t.Error("SeedHash not deterministic")
	}
}
