package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Munyola/boostsrl/pkg/boostsrl/internalerr"
	"github.com/Munyola/boostsrl/pkg/boostsrl/registry"
)

func TestSaveAndGet(t *testing.T) {
	ctx := context.Background()
	st := New()
	defer st.Close()

	run := registry.Run{
		Target:       "cancer",
		NodeSize:     2,
		MaxTreeDepth: 3,
		Background:   "mode: cancer(+Person).\n",
		Trees:        []string{"(tree 0)", "(tree 1)"},
		Threshold:    0.5,
	}

	id, err := st.SaveRun(ctx, run)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	got, err := st.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Target != "cancer" || len(got.Trees) != 2 {
		t.Errorf("run changed: %+v", got)
	}

	// Stored trees are isolated from the caller's slice.
	got.Trees[0] = "mutated"
	again, err := st.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if again.Trees[0] != "(tree 0)" {
		t.Error("stored run shares memory with returned copy")
	}
}

func TestGetMissing(t *testing.T) {
	st := New()
	if _, err := st.GetRun(context.Background(), "nope"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	st := New()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, target := range []string{"cancer", "cancer", "advisedby"} {
		run := registry.Run{
			Target:    target,
			Trees:     []string{"t"},
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := st.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	all, err := st.ListRuns(ctx, "")
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
	if all[0].Target != "advisedby" {
		t.Errorf("expected newest first, got %s", all[0].Target)
	}

	cancer, err := st.ListRuns(ctx, "cancer")
	if err != nil {
		t.Fatalf("ListRuns(cancer): %v", err)
	}
	if len(cancer) != 2 {
		t.Errorf("expected 2 cancer runs, got %d", len(cancer))
	}
}
