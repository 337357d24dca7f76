package components

// BodyComponent 轴对齐的移动矩形
// 玩家、子弹、敌人共用；爆炸特效也使用它记录位置和尺寸
//
// 坐标基于 480x720 的逻辑画布，(X, Y) 为左上角。
// VX/VY 为每参考帧（1/60 秒）的位移量。
type BodyComponent struct {
	X, Y   float64 // 左上角坐标
	W, H   float64 // 逻辑宽高（碰撞和渲染都只使用这个尺寸）
	VX, VY float64 // 速度（单位/参考帧）

	// Alive 为 false 表示本帧已结算（击中、漏掉、越界），
	// 不再参与物理和渲染，并在本帧结束时被清理
	Alive bool
}

// CenterX 返回中心点X坐标
func (b *BodyComponent) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY 返回中心点Y坐标
func (b *BodyComponent) CenterY() float64 {
	return b.Y + b.H/2
}
