package service

import (
	"testing"

	"github.com/iliyamo/movie-catalog/internal/model"
)

func TestCanModifyOwned(t *testing.T) {
	cases := []struct {
		name    string
		actor   Actor
		ownerID uint64
		want    bool
	}{
		{"owner", Actor{ID: 7, Role: model.RoleUser}, 7, true},
		{"other user", Actor{ID: 7, Role: model.RoleUser}, 8, false},
		{"staff on foreign resource", Actor{ID: 1, Role: model.RoleStaff}, 8, true},
		{"staff on own resource", Actor{ID: 8, Role: model.RoleStaff}, 8, true},
		{"unknown role non-owner", Actor{ID: 7, Role: "ADMIN"}, 8, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanModifyOwned(tc.actor, tc.ownerID); got != tc.want {
				t.Errorf("CanModifyOwned(%+v, %d) = %v, want %v", tc.actor, tc.ownerID, got, tc.want)
			}
		})
	}
}

func TestCanViewCollection(t *testing.T) {
	private := model.Collection{ID: 1, OwnerID: 5, IsPublic: false}
	public := model.Collection{ID: 2, OwnerID: 5, IsPublic: true}

	cases := []struct {
		name  string
		actor Actor
		col   model.Collection
		want  bool
	}{
		{"public visible to anyone", Actor{ID: 99, Role: model.RoleUser}, public, true},
		{"public visible to anonymous", Actor{}, public, true},
		{"private visible to owner", Actor{ID: 5, Role: model.RoleUser}, private, true},
		{"private hidden from others", Actor{ID: 6, Role: model.RoleUser}, private, false},
		{"private visible to staff", Actor{ID: 6, Role: model.RoleStaff}, private, true},
		{"private hidden from anonymous", Actor{}, private, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanViewCollection(tc.actor, tc.col); got != tc.want {
				t.Errorf("CanViewCollection(%+v, %+v) = %v, want %v", tc.actor, tc.col, got, tc.want)
			}
		})
	}
}

func TestIsStaff(t *testing.T) {
	if (Actor{ID: 1, Role: model.RoleUser}).IsStaff() {
		t.Error("USER must not be staff")
	}
	if !(Actor{ID: 1, Role: model.RoleStaff}).IsStaff() {
		t.Error("STAFF must be staff")
	}
}
