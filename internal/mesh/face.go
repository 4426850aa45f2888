package mesh

// Face is an axis-aligned face direction.
type Face uint8

const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ

	numFaces = 6
)

var faceNames = [numFaces]string{"+x", "-x", "+y", "-y", "+z", "-z"}

func (f Face) String() string {
	if f >= numFaces {
		return "invalid"
	}
	return faceNames[f]
}

// Normal returns the unit offset towards the neighbour the face looks at.
func (f Face) Normal() [3]int {
	return normals[f]
}

var normals = [numFaces][3]int{
	PosX: {1, 0, 0},
	NegX: {-1, 0, 0},
	PosY: {0, 1, 0},
	NegY: {0, -1, 0},
	PosZ: {0, 0, 1},
	NegZ: {0, 0, -1},
}

// corners lists each face's quad corners as offsets from the cell's minimum
// corner, counter-clockwise when seen from outside the cell.
var corners = [numFaces][4][3]int{
	PosX: {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	NegX: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	PosY: {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	NegY: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	PosZ: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	NegZ: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

// quadOrder splits a quad into two triangles.
var quadOrder = [VerticesPerFace]int{0, 1, 2, 0, 2, 3}

// uvs holds the texture coordinate of each quad corner, per face.
var uvs = [numFaces][4][2]uint8{
	PosX: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	NegX: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	PosY: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
	NegY: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	PosZ: {{0, 0}, {1, 0}, {1, 1}, {0, 1}},
	NegZ: {{0, 0}, {0, 1}, {1, 1}, {1, 0}},
}

// UV returns the texture coordinate of the n-th emitted vertex of a face
// (n in [0, 6)). Renderers index it with vertexID % 6.
func UV(f Face, n int) (u, v uint8) {
	c := uvs[f][quadOrder[n]]
	return c[0], c[1]
}
