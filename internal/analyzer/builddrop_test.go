package analyzer

import "testing"

func TestBuildDropDetectorBuild(t *testing.T) {
	d := newBuildDropDetector()

	now := 0.0
	for range 20 {
		d.update(0.2, now)
		now += 0.1
	}
	if d.building() || d.drop() {
		t.Fatalf("flat intensity flagged building=%v drop=%v", d.building(), d.drop())
	}

	for range 10 {
		d.update(0.3, now)
		now += 0.1
	}
	if !d.building() {
		t.Fatalf("sustained rise not flagged as building")
	}
	if d.drop() {
		t.Fatalf("building and drop flagged at once")
	}
}

func TestBuildDropDetectorDropAndExpiry(t *testing.T) {
	d := newBuildDropDetector()

	now := 0.0
	for range 20 {
		d.update(0.2, now)
		now += 0.1
	}
	for range 10 {
		d.update(0.3, now)
		now += 0.1
	}
	if !d.building() {
		t.Fatalf("precondition: not building")
	}

	dropTime := now
	d.update(0.6, dropTime)
	if !d.drop() {
		t.Fatalf("spike during build not flagged as drop")
	}
	if d.building() {
		t.Fatalf("building still set during drop")
	}

	d.update(0.1, dropTime+0.5)
	if !d.drop() {
		t.Fatalf("drop expired before its hold time")
	}
	d.update(0.1, dropTime+1.1)
	if d.drop() {
		t.Fatalf("drop did not expire after its hold time")
	}
}

func TestBuildDropDetectorNeedsHistory(t *testing.T) {
	d := newBuildDropDetector()
	for i := range 9 {
		d.update(0.9, float64(i)*0.1)
	}
	if d.building() || d.drop() {
		t.Fatalf("flagged building=%v drop=%v before enough history", d.building(), d.drop())
	}
}
