// Package ecs 是游戏世界使用的最小实体-组件存储。
//
// 组件按具体类型（通常是指针类型）索引，每个实体每种类型最多一个组件。
// 查询结果按实体 ID 升序返回，ID 单调递增，所以迭代顺序就是生成顺序，
// 碰撞结算依赖这一点决定"先生成的敌人先被击中"。
package ecs

import (
	"maps"
	"reflect"
	"slices"
)

// EntityID 实体标识，0 保留为无效值
type EntityID uint64

// componentSet 一个实体挂载的全部组件
type componentSet map[reflect.Type]any

// EntityManager 实体和组件的容器
//
// 销毁是延迟的：DestroyEntity 只登记，RemoveMarkedEntities 才真正删除。
// 一帧内所有系统执行完之后统一清理，期间被登记的实体仍可查询，
// 后续系统通过组件上的状态（如 BodyComponent.Alive）跳过它们。
type EntityManager struct {
	lastID   EntityID
	entities map[EntityID]componentSet

	// doomed 按登记顺序记录待删除实体，doomedSet 用于去重
	doomed    []EntityID
	doomedSet map[EntityID]struct{}
}

// NewEntityManager 创建空的实体管理器
func NewEntityManager() *EntityManager {
	return &EntityManager{
		entities:  make(map[EntityID]componentSet),
		doomedSet: make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建一个没有组件的实体
func (em *EntityManager) CreateEntity() EntityID {
	em.lastID++
	em.entities[em.lastID] = componentSet{}
	return em.lastID
}

// DestroyEntity 登记实体在本帧结束时删除
// 不存在或已登记的实体忽略
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.entities[id]; !ok {
		return
	}
	if _, ok := em.doomedSet[id]; ok {
		return
	}
	em.doomedSet[id] = struct{}{}
	em.doomed = append(em.doomed, id)
}

// IsMarkedForDestroy 实体是否已登记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, ok := em.doomedSet[id]
	return ok
}

// AddComponent 挂载组件，同类型组件会被替换
// 键是 component 的动态类型，泛型版本 AddComponent[T] 使用类型参数
func (em *EntityManager) AddComponent(id EntityID, component any) {
	em.put(id, reflect.TypeOf(component), component)
}

func (em *EntityManager) put(id EntityID, t reflect.Type, component any) {
	if set, ok := em.entities[id]; ok {
		set[t] = component
	}
}

// RemoveComponent 卸载指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if set, ok := em.entities[id]; ok {
		delete(set, componentType)
	}
}

// GetComponent 按类型取组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (any, bool) {
	comp, ok := em.entities[id][componentType]
	return comp, ok
}

// HasComponent 实体是否挂载了指定类型的组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	_, ok := em.entities[id][componentType]
	return ok
}

// RemoveMarkedEntities 删除所有已登记的实体，返回删除数量
func (em *EntityManager) RemoveMarkedEntities() int {
	n := len(em.doomed)
	for _, id := range em.doomed {
		delete(em.entities, id)
	}
	clear(em.doomedSet)
	em.doomed = em.doomed[:0]
	return n
}

// EntityCount 当前实体数（含已登记但未清理的）
func (em *EntityManager) EntityCount() int {
	return len(em.entities)
}

// GetEntitiesWith 返回同时拥有全部指定组件类型的实体，按生成顺序排列
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	ids := slices.Sorted(maps.Keys(em.entities))
	return slices.DeleteFunc(ids, func(id EntityID) bool {
		set := em.entities[id]
		for _, t := range componentTypes {
			if _, ok := set[t]; !ok {
				return true
			}
		}
		return false
	})
}
