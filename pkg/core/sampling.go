package core

import (
	"math"
	"math/rand"
)

// OrthonormalBasis returns two unit vectors perpendicular to direction and to
// each other. direction must be normalized.
func OrthonormalBasis(direction Vec3) (tangent, bitangent Vec3) {
	if math.Abs(direction.X) > math.Abs(direction.Z) {
		tangent = NewVec3(-direction.Y, direction.X, 0)
	} else {
		tangent = NewVec3(0, -direction.Z, direction.Y)
	}
	tangent = tangent.Normalize()
	bitangent = direction.Cross(tangent).Normalize()
	return tangent, bitangent
}

// StratifiedSquare returns n*n jittered points covering the square
// corner + [0,1)*u + [0,1)*v. Each grid cell receives exactly one point
// placed uniformly at random inside it. Points are ordered row by row.
func StratifiedSquare(corner, u, v Vec3, n int, random *rand.Rand) []Vec3 {
	if n <= 0 {
		return nil
	}

	uStep := u.Multiply(1.0 / float64(n))
	vStep := v.Multiply(1.0 / float64(n))

	points := make([]Vec3, 0, n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x := float64(i) + random.Float64()
			y := float64(j) + random.Float64()
			points = append(points, corner.Add(uStep.Multiply(x)).Add(vStep.Multiply(y)))
		}
	}
	return points
}
