package histstore

import "testing"

func TestCmdHistory(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()

	if seq, err := st.NextCmdSeq(); err != nil || seq != 1 {
		t.Fatalf("NextCmdSeq on empty store = %d, %v; want 1, nil", seq, err)
	}

	cmds := []string{"echo hello", "ls -l", "echo bye"}
	for i, text := range cmds {
		seq, err := st.AddCmd(text)
		if err != nil {
			t.Fatalf("AddCmd(%q): %v", text, err)
		}
		if seq != i+1 {
			t.Errorf("AddCmd(%q) seq = %d, want %d", text, seq, i+1)
		}
	}

	cmd, err := st.Cmd(2)
	if err != nil {
		t.Fatalf("Cmd(2): %v", err)
	}
	if cmd.Text != "ls -l" {
		t.Errorf("Cmd(2).Text = %q, want %q", cmd.Text, "ls -l")
	}
	if cmd.Session != st.SessionID() {
		t.Errorf("Cmd(2).Session = %q, want %q", cmd.Session, st.SessionID())
	}

	got, err := st.CmdsWithSeq(1, 4)
	if err != nil {
		t.Fatalf("CmdsWithSeq: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("CmdsWithSeq len = %d, want 3", len(got))
	}

	next, err := st.NextCmd(1, "echo")
	if err != nil || next.Seq != 1 {
		t.Errorf("NextCmd(1, echo) = %+v, %v; want seq 1", next, err)
	}
	prev, err := st.PrevCmd(3, "echo")
	if err != nil || prev.Seq != 1 {
		t.Errorf("PrevCmd(3, echo) = %+v, %v; want seq 1", prev, err)
	}
	prev, err = st.PrevCmd(4, "echo")
	if err != nil || prev.Seq != 3 {
		t.Errorf("PrevCmd(4, echo) = %+v, %v; want seq 3", prev, err)
	}

	if err := st.DelCmd(2); err != nil {
		t.Fatalf("DelCmd(2): %v", err)
	}
	if _, err := st.Cmd(2); err != ErrNoMatchingCmd {
		t.Errorf("Cmd(2) after delete: %v, want ErrNoMatchingCmd", err)
	}
}

func TestSessionIDStable(t *testing.T) {
	st, cleanup := MustGetTempStore()
	defer cleanup()
	if st.SessionID() == "" {
		t.Fatal("SessionID is empty")
	}
	if st.SessionID() != st.SessionID() {
		t.Error("SessionID changed between calls")
	}
}
