package tile

import "testing"

var allPoses = []Orientation{
	Identity, Rot90, Rot180, Rot270,
	Mirror, MirrorRot90, MirrorRot180, MirrorRot270,
}

func TestFlipsAreSelfInverse(t *testing.T) {
	for _, p := range allPoses {
		if got := p.FlipHorizontal().FlipHorizontal(); got != p {
			t.Errorf("FlipHorizontal twice on %v = %v", p, got)
		}
		if got := p.FlipVertical().FlipVertical(); got != p {
			t.Errorf("FlipVertical twice on %v = %v", p, got)
		}
	}
}

func TestFlipTables(t *testing.T) {
	tests := []struct {
		pose  Orientation
		horiz Orientation
		vert  Orientation
	}{
		{Identity, Mirror, MirrorRot180},
		{Rot90, MirrorRot270, MirrorRot90},
		{Rot180, MirrorRot180, Mirror},
		{Rot270, MirrorRot90, MirrorRot270},
		{Mirror, Identity, Rot180},
		{MirrorRot90, Rot270, Rot90},
		{MirrorRot180, Rot180, Identity},
		{MirrorRot270, Rot90, Rot270},
	}

	for _, tt := range tests {
		t.Run(tt.pose.String(), func(t *testing.T) {
			if got := tt.pose.FlipHorizontal(); got != tt.horiz {
				t.Errorf("FlipHorizontal = %v, want %v", got, tt.horiz)
			}
			if got := tt.pose.FlipVertical(); got != tt.vert {
				t.Errorf("FlipVertical = %v, want %v", got, tt.vert)
			}
		})
	}
}

func TestRotateGroupAction(t *testing.T) {
	for _, p := range allPoses {
		for a := 0; a < 4; a++ {
			for b := 0; b < 4; b++ {
				got := p.Rotate(a).Rotate(b)
				want := p.Rotate((a + b) % 4)
				if got != want {
					t.Errorf("Rotate(Rotate(%v,%d),%d) = %v, want %v", p, a, b, got, want)
				}
			}
		}
	}
}

func TestRotateKeepsMirrorState(t *testing.T) {
	for _, p := range allPoses {
		for steps := -5; steps <= 5; steps++ {
			if p.Rotate(steps).Mirrored() != p.Mirrored() {
				t.Errorf("Rotate(%v,%d) changed mirror state", p, steps)
			}
		}
	}

	if got := MirrorRot270.Rotate(1); got != Mirror {
		t.Errorf("MirrorRot270.Rotate(1) = %v, want mirror", got)
	}
	if got := Identity.Rotate(-1); got != Rot270 {
		t.Errorf("Identity.Rotate(-1) = %v, want rot270", got)
	}
}

func TestInvalidOrientationNormalizes(t *testing.T) {
	bogus := Orientation(12)
	if bogus.Valid() {
		t.Fatal("Orientation(12) should not be valid")
	}
	if got := bogus.Rotate(1); got != Rot90 {
		t.Errorf("Rotate on invalid pose = %v, want rot90", got)
	}
	if got := bogus.FlipHorizontal(); got != Mirror {
		t.Errorf("FlipHorizontal on invalid pose = %v, want mirror", got)
	}
}

func TestTileHelpers(t *testing.T) {
	base := New(7)
	if base.Tint != White || base.Pose != Identity {
		t.Fatalf("New(7) = %+v", base)
	}
	if base.IsEmpty() {
		t.Error("tile 7 should not be empty")
	}
	if !(Tile{}).IsEmpty() {
		t.Error("zero tile should be empty")
	}

	r := base.Rotated(3)
	if r.Pose != Rot270 || r.ID != 7 {
		t.Errorf("Rotated(3) = %+v", r)
	}
	if base.FlippedH().FlippedH() != base {
		t.Error("FlippedH should be self-inverse on tiles")
	}
	if base.FlippedV().Pose != MirrorRot180 {
		t.Errorf("FlippedV pose = %v", base.FlippedV().Pose)
	}
	if base.WithTint(0x112233FF).Tint != 0x112233FF {
		t.Error("WithTint did not set tint")
	}
	if base.WithPose(Mirror) == base {
		t.Error("WithPose should produce a distinct tile")
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF0000FF", 0xFF0000FF, false},
		{"00FF00", 0x00FF00FF, false},
		{"#0000ff80", 0x0000FF80, false},
		{"#FFF", 0, true},
		{"GGGGGG", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColorComponents(t *testing.T) {
	c := RGBA(0x12, 0x34, 0x56, 0x78)
	r, g, b, a := c.Components()
	if r != 0x12 || g != 0x34 || b != 0x56 || a != 0x78 {
		t.Errorf("Components() = %x %x %x %x", r, g, b, a)
	}
	if c.String() != "#12345678" {
		t.Errorf("String() = %s", c)
	}
}
