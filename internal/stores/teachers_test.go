package stores

import (
	"context"
	"testing"

	goStudio "github.com/MrEthical07/goStudio"
)

func TestTeachersCreateFindList(t *testing.T) {
	_, rdb := newTestRedis(t)
	teachers := NewTeachers(rdb, "test")
	ctx := context.Background()

	for _, name := range [][2]string{{"Margot", "Delahaye"}, {"Hélène", "Thiercelin"}} {
		if err := teachers.Create(ctx, &goStudio.Teacher{FirstName: name[0], LastName: name[1]}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := teachers.FindByID(ctx, 2)
	if err != nil || got == nil {
		t.Fatalf("FindByID: %+v, %v", got, err)
	}
	if got.FirstName != "Hélène" || !got.CreatedAt.IsZero() {
		t.Fatalf("unexpected teacher: %+v", got)
	}

	missing, err := teachers.FindByID(ctx, 9)
	if missing != nil || err != nil {
		t.Fatalf("expected nil, nil; got %+v, %v", missing, err)
	}

	list, err := teachers.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestTeachersListEmpty(t *testing.T) {
	_, rdb := newTestRedis(t)
	list, err := NewTeachers(rdb, "test").List(context.Background())
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v, %v", list, err)
	}
}
