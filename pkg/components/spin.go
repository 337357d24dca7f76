package components

// SpinComponent 旋转状态（仅敌人使用）
// 旋转只影响渲染，碰撞检测始终使用未旋转的 BodyComponent
type SpinComponent struct {
	Angle float64 // 当前角度（弧度）
	Spin  float64 // 角速度（弧度/参考帧）
}
