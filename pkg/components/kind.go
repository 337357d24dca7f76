package components

// EntityKind 实体类别
// 各系统通过类别筛选自己关心的实体
type EntityKind int

const (
	// KindPlayer 玩家飞船（每局唯一，始终存活）
	KindPlayer EntityKind = iota
	// KindBullet 玩家子弹：向上飞行，越过顶部或击中敌人后移除
	KindBullet
	// KindEnemy 敌人（陨石）：向下坠落并自转
	KindEnemy
	// KindExplosion 爆炸特效：敌人被击毁时生成，播放完帧动画后移除
	KindExplosion
)

// String 返回类别名称（日志用）
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindBullet:
		return "bullet"
	case KindEnemy:
		return "enemy"
	case KindExplosion:
		return "explosion"
	}
	return "unknown"
}

// KindComponent 标记实体类别
type KindComponent struct {
	Kind EntityKind
}
