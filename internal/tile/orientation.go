package tile

// Orientation is one of the eight discrete poses a tile can be drawn in.
// Values 0-3 are plain clockwise rotations, 4-7 are their mirrored counterparts.
type Orientation uint8

const (
	Identity Orientation = iota
	Rot90
	Rot180
	Rot270
	Mirror
	MirrorRot90
	MirrorRot180
	MirrorRot270
)

// Flip tables are not a mirror-bit toggle; flip order does not commute with rotation.
var (
	flipHorizontal = [8]Orientation{
		Identity:     Mirror,
		Rot90:        MirrorRot270,
		Rot180:       MirrorRot180,
		Rot270:       MirrorRot90,
		Mirror:       Identity,
		MirrorRot90:  Rot270,
		MirrorRot180: Rot180,
		MirrorRot270: Rot90,
	}
	flipVertical = [8]Orientation{
		Identity:     MirrorRot180,
		Rot90:        MirrorRot90,
		Rot180:       Mirror,
		Rot270:       MirrorRot270,
		Mirror:       Rot180,
		MirrorRot90:  Rot90,
		MirrorRot180: Identity,
		MirrorRot270: Rot270,
	}
)

// Valid reports whether o is one of the eight defined poses.
func (o Orientation) Valid() bool {
	return o <= MirrorRot270
}

func (o Orientation) normal() Orientation {
	if !o.Valid() {
		return Identity
	}
	return o
}

// Mirrored reports whether the pose includes a mirror.
func (o Orientation) Mirrored() bool {
	return o.normal() >= Mirror
}

// Degrees returns the clockwise rotation component of the pose.
func (o Orientation) Degrees() int {
	return int(o.normal()%4) * 90
}

// Rotate turns the pose by steps quarter turns clockwise (negative steps turn
// counter-clockwise). The mirror state is never changed.
func (o Orientation) Rotate(steps int) Orientation {
	o = o.normal()
	base := o &^ 3
	r := (int(o&3) + steps) % 4
	if r < 0 {
		r += 4
	}
	return base + Orientation(r)
}

// FlipHorizontal mirrors the pose across the vertical axis.
func (o Orientation) FlipHorizontal() Orientation {
	return flipHorizontal[o.normal()]
}

// FlipVertical mirrors the pose across the horizontal axis.
func (o Orientation) FlipVertical() Orientation {
	return flipVertical[o.normal()]
}

// String returns a human-readable pose name.
func (o Orientation) String() string {
	switch o {
	case Identity:
		return "identity"
	case Rot90:
		return "rot90"
	case Rot180:
		return "rot180"
	case Rot270:
		return "rot270"
	case Mirror:
		return "mirror"
	case MirrorRot90:
		return "mirror_rot90"
	case MirrorRot180:
		return "mirror_rot180"
	case MirrorRot270:
		return "mirror_rot270"
	default:
		return "unknown"
	}
}
