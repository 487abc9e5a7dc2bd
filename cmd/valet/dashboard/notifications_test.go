package dashboard

import (
	"testing"
	"time"
)

func TestFeed(t *testing.T) {
	feed := NewFeed()
	feed.now = func() time.Time {
		return time.Date(2024, 5, 10, 14, 3, 9, 0, time.Local)
	}

	first := feed.Append("vm-1 Started")
	second := feed.Append("vm-2 Restarted")

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("IDs = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.Timestamp != "14:03:09" {
		t.Errorf("Timestamp = %q, want 14:03:09", first.Timestamp)
	}

	list := feed.List()
	if len(list) != 2 || list[0].ID != 2 || list[1].ID != 1 {
		t.Fatalf("List() = %+v, want newest first", list)
	}
	if feed.Badge() != 2 {
		t.Errorf("Badge() = %d, want 2", feed.Badge())
	}

	t.Run("dismiss", func(t *testing.T) {
		if !feed.Dismiss(1) {
			t.Fatal("Dismiss(1) = false")
		}
		if feed.Dismiss(1) {
			t.Error("second Dismiss(1) should return false")
		}
		list := feed.List()
		if len(list) != 1 || list[0].ID != 2 {
			t.Errorf("List() = %+v, want only #2", list)
		}
	})

	t.Run("clear keeps ids unique", func(t *testing.T) {
		feed.Clear()
		if feed.Badge() != 0 {
			t.Errorf("Badge() = %d after Clear", feed.Badge())
		}
		n := feed.Append("vm-3 Deallocated")
		if n.ID != 3 {
			t.Errorf("ID after Clear = %d, want 3", n.ID)
		}
	})
}

func TestFeedListIsACopy(t *testing.T) {
	feed := NewFeed()
	feed.Append("a")
	list := feed.List()
	list[0].Message = "changed"
	if feed.List()[0].Message != "a" {
		t.Error("List() must not expose internal storage")
	}
}
