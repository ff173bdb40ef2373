package engine

import "testing"

func TestLockedLobbyRejectsJoins(t *testing.T) {
	game := NewGame("TESTRM", ModeTeams, 60, 1)
	if _, err := game.AddPlayer("Ada"); err != nil {
		t.Fatalf("add player: %v", err)
	}
	if err := game.SetLocked(true); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if _, err := game.AddPlayer("Bob"); !IsKind(err, KindPreconditionFailed) {
		t.Fatalf("expected precondition error, got %v", err)
	}
	if err := game.SetLocked(false); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := game.AddPlayer("Bob"); err != nil {
		t.Fatalf("join after unlock: %v", err)
	}
}

func TestLockRejectedAfterStart(t *testing.T) {
	game := startedTwoPlayerGame(t)
	if err := game.SetLocked(true); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestRemovePlayerWithdrawsCharacters(t *testing.T) {
	game := newTestGame(t, []string{"Ada", "Bob", "Cleo"}, 2,
		[][]string{{"A", "B"}, {"C", "D"}, {"E", "F"}})
	bob, _ := game.FindPlayerByName("Bob")

	if err := game.RemovePlayer(bob.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(game.Players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(game.Players))
	}
	if _, ok := game.FindPlayerByName("Bob"); ok {
		t.Fatal("expected Bob gone")
	}
	if len(game.CharacterPool) != 4 {
		t.Fatalf("expected 4 pooled characters, got %d", len(game.CharacterPool))
	}
	for _, name := range game.CharacterPool {
		if name == "C" || name == "D" {
			t.Fatalf("expected Bob's character %q withdrawn", name)
		}
	}
	if err := game.RemovePlayer(bob.ID); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found on repeat, got %v", err)
	}
}

func TestRemovePlayerRejectedAfterStart(t *testing.T) {
	game := startedTwoPlayerGame(t)
	if err := game.RemovePlayer(game.Players[0].ID); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state, got %v", err)
	}
}

func TestRenamePlayer(t *testing.T) {
	game := NewGame("TESTRM", ModeTeams, 60, 1)
	ada, _ := game.AddPlayer("Ada")
	if _, err := game.AddPlayer("Bob"); err != nil {
		t.Fatalf("add player: %v", err)
	}

	if err := game.RenamePlayer(ada.ID, "Bob"); !IsKind(err, KindValidation) {
		t.Fatalf("expected validation error on taken name, got %v", err)
	}
	if err := game.RenamePlayer(ada.ID, "Ada Lovelace"); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, ok := game.FindPlayerByName("Ada Lovelace"); !ok {
		t.Fatal("expected renamed player findable")
	}
	// Renaming to the current name is a no-op, not a collision.
	if err := game.RenamePlayer(ada.ID, "Ada Lovelace"); err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
	if err := game.RenamePlayer(999, "Ghost"); !IsKind(err, KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDuplicateSubmissionRejected(t *testing.T) {
	game := NewGame("TESTRM", ModeTeams, 60, 1)
	ada, _ := game.AddPlayer("Ada")
	if err := game.AddCharacters(ada.ID, []string{"A"}); err != nil {
		t.Fatalf("add characters: %v", err)
	}
	if err := game.AddCharacters(ada.ID, []string{"B"}); !IsKind(err, KindInvalidState) {
		t.Fatalf("expected invalid state on resubmission, got %v", err)
	}
}
