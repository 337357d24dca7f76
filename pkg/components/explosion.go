package components

// ExplosionComponent 爆炸帧动画状态
// 位置和尺寸由同一实体上的 BodyComponent 提供（复制自被击毁的敌人）
type ExplosionComponent struct {
	Frame   int     // 当前帧索引
	Elapsed float64 // 自上次换帧以来累计的时间（秒）
}
