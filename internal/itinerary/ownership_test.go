package itinerary_test

import (
	"errors"
	"testing"

	"github.com/tripweaver/tripweaver/internal/itinerary"
)

func TestCanEdit(t *testing.T) {
	it := &itinerary.Itinerary{CreatedBy: "usr_owner"}

	tests := []struct {
		name     string
		viewerID string
		want     bool
	}{
		{"owner", "usr_owner", true},
		{"other signed-in user", "usr_other", false},
		{"anonymous", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := itinerary.CanEdit(tt.viewerID, it); got != tt.want {
				t.Errorf("CanEdit(%q) = %v, want %v", tt.viewerID, got, tt.want)
			}
		})
	}
}

func TestCanEdit_UnownedItinerary(t *testing.T) {
	// An itinerary that was never persisted has no creator; nobody may
	// "edit" it through the persistence path, not even anonymously.
	it := &itinerary.Itinerary{}
	if itinerary.CanEdit("", it) {
		t.Error("anonymous viewer must not match an empty creator")
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	it := &itinerary.Itinerary{ID: "itn_8f14e45fceea167a5a36", OwnerID: "usr_c4ca4238a0b923820dcc"}

	token := itinerary.ShareToken(it)
	id, owner, err := itinerary.ParseShareToken(token)
	if err != nil {
		t.Fatalf("ParseShareToken(%q) returned error: %v", token, err)
	}
	if id != it.ID || owner != it.OwnerID {
		t.Errorf("round trip = (%q, %q), want (%q, %q)", id, owner, it.ID, it.OwnerID)
	}
}

func TestParseShareToken_Invalid(t *testing.T) {
	for _, token := range []string{"", "noseparator", "-missingid", "missingowner-"} {
		if _, _, err := itinerary.ParseShareToken(token); !errors.Is(err, itinerary.ErrInvalidShareToken) {
			t.Errorf("ParseShareToken(%q) error = %v, want ErrInvalidShareToken", token, err)
		}
	}
}
