package main

import "testing"

func TestMainWiring(t *testing.T) {
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	t.Cleanup(func() {
		setVersionInfo = origSetVersion
		executeCmd = origExecute
	})

	var order []string
	setVersionInfo = func(v, c, d string) {
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
		order = append(order, "version")
	}
	executeCmd = func() {
		order = append(order, "execute")
	}

	main()

	if len(order) != 2 || order[0] != "version" || order[1] != "execute" {
		t.Fatalf("unexpected call order: %v", order)
	}
}
