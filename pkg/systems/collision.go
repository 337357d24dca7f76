package systems

import "github.com/gonewx/starfall/pkg/components"

// Overlap 检查两个矩形是否严格重叠（AABB）
// 仅边缘接触不算重叠；Overlap(a, b) == Overlap(b, a)
func Overlap(a, b *components.BodyComponent) bool {
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}
